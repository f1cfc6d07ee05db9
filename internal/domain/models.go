package domain

import "fmt"

// Photo is a single photo known to the server
type Photo struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Tab identifies which photo list the gallery shows
type Tab string

const (
	TabAll  Tab = "all"
	TabMine Tab = "mine"
	TabFind Tab = "find"
)

// ParseTab maps a user supplied tab name to a Tab
func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabAll, TabMine, TabFind:
		return Tab(s), true
	default:
		return "", false
	}
}

// BBox is a face bounding box in photo pixel space
type BBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Face is the representative face of a person
type Face struct {
	BBox     BBox   `json:"bbox"`
	PhotoURL string `json:"photo_url"`
}

// Person is a cluster of faces detected by the server
type Person struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	FaceCount          int    `json:"face_count"`
	RepresentativeFace *Face  `json:"representative_face"`
}

// User is the signed in user, or a guest
type User struct {
	Username string
	Email    string
	Token    string
	IsGuest  bool
}

// SignedIn reports whether the user holds an access token
func (u User) SignedIn() bool {
	return !u.IsGuest && u.Token != ""
}

// UploadResult is the server's answer to an upload
type UploadResult struct {
	Count      int `json:"count"`
	Duplicates int `json:"duplicates"`
}

// DisplayName returns the person's name, or "Person {id}" when unnamed
func (p Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return "Person " + p.ID
}

// PhotosLabel returns the face count as "1 photo" or "N photos"
func (p Person) PhotosLabel() string {
	return plural(p.FaceCount, "photo", "photos")
}

// VisiblePersons drops persons without a representative face
func VisiblePersons(persons []Person) []Person {
	out := make([]Person, 0, len(persons))
	for _, p := range persons {
		if p.RepresentativeFace != nil {
			out = append(out, p)
		}
	}
	return out
}

// Message is the toast shown after an upload, empty when nothing happened
func (r UploadResult) Message() string {
	switch {
	case r.Count == 0 && r.Duplicates == 0:
		return ""
	case r.Count == 0:
		if r.Duplicates == 1 {
			return "All 1 photo is already uploaded."
		}
		return fmt.Sprintf("All %d photos are already uploaded.", r.Duplicates)
	case r.Duplicates > 0:
		return fmt.Sprintf("Added %s. %s skipped.",
			plural(r.Count, "photo", "photos"), plural(r.Duplicates, "duplicate", "duplicates"))
	default:
		return fmt.Sprintf("Thanks for sharing 💖 Added %s.", plural(r.Count, "photo", "photos"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
