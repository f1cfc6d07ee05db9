package logic

import (
	"strconv"
	"strings"

	"photogrip/internal/domain"
)

// MatchesPerson checks if a person matches the filter query. A query of the
// form "photos:N" keeps persons with at least N photos; anything else is
// matched against the display name and id.
func MatchesPerson(p domain.Person, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}

	query := strings.ToLower(strings.TrimSpace(filterQuery))

	if rest, ok := strings.CutPrefix(query, "photos:"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return false
		}
		return p.FaceCount >= n
	}

	return strings.Contains(strings.ToLower(p.DisplayName()), query) ||
		strings.Contains(strings.ToLower(p.ID), query)
}

// FilterPersons returns the persons matching the query, keeping their order
func FilterPersons(persons []domain.Person, filterQuery string) []domain.Person {
	if filterQuery == "" {
		return persons
	}
	out := make([]domain.Person, 0, len(persons))
	for _, p := range persons {
		if MatchesPerson(p, filterQuery) {
			out = append(out, p)
		}
	}
	return out
}
