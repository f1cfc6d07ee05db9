// Package selection tracks which photos are picked and in what order.
//
// Callers address photos by their index in the current sequence; the state
// itself is keyed by photo ID so it survives the sequence being replaced.
package selection

import "sort"

// State holds selection state
type State struct {
	Selected    map[string]bool // photo ID -> picked
	Order       []string        // photo IDs in the order they were picked
	LastToggled int             // index anchor for range gestures, -1 when unset
}

// Service handles selection logic against the current photo sequence
type Service struct {
	state *State
	ids   []string       // index -> photo ID for the current sequence
	index map[string]int // photo ID -> index
}

// NewService creates an empty selection service
func NewService() *Service {
	return &Service{
		state: &State{
			Selected:    make(map[string]bool),
			LastToggled: -1,
		},
		index: make(map[string]int),
	}
}

// SetSequence replaces the index -> ID mapping. Picked IDs missing from the
// new sequence are dropped; the rest keep their order and badges.
func (s *Service) SetSequence(ids []string) {
	s.ids = append(s.ids[:0:0], ids...)
	s.index = make(map[string]int, len(ids))
	for i, id := range ids {
		if _, dup := s.index[id]; !dup {
			s.index[id] = i
		}
	}

	kept := s.state.Order[:0]
	for _, id := range s.state.Order {
		if _, ok := s.index[id]; ok {
			kept = append(kept, id)
		} else {
			delete(s.state.Selected, id)
		}
	}
	s.state.Order = kept

	if s.state.LastToggled >= len(ids) {
		s.state.LastToggled = -1
	}
}

// idAt resolves an index, returning "" when it is out of range
func (s *Service) idAt(index int) string {
	if index < 0 || index >= len(s.ids) {
		return ""
	}
	return s.ids[index]
}

// TogglePick flips index, or, when rng is non-empty, adds every index of rng
// in the given order. Already picked entries keep their position.
func (s *Service) TogglePick(index int, rng []int) {
	if len(rng) > 0 {
		for _, i := range rng {
			s.add(s.idAt(i))
		}
		s.state.LastToggled = index
		return
	}

	id := s.idAt(index)
	if id == "" {
		return
	}
	if s.state.Selected[id] {
		s.remove(id)
	} else {
		s.add(id)
	}
	s.state.LastToggled = index
}

func (s *Service) add(id string) {
	if id == "" || s.state.Selected[id] {
		return
	}
	s.state.Selected[id] = true
	s.state.Order = append(s.state.Order, id)
}

func (s *Service) remove(id string) {
	delete(s.state.Selected, id)
	for i, o := range s.state.Order {
		if o == id {
			s.state.Order = append(s.state.Order[:i], s.state.Order[i+1:]...)
			break
		}
	}
}

// Range returns the indices from the last toggled index to toIndex inclusive,
// walking away from the anchor. With no anchor the range is just toIndex.
func (s *Service) Range(toIndex int) []int {
	from := s.state.LastToggled
	if from < 0 || from >= len(s.ids) {
		from = toIndex
	}
	step := 1
	if toIndex < from {
		step = -1
	}
	out := make([]int, 0, abs(toIndex-from)+1)
	for i := from; ; i += step {
		out = append(out, i)
		if i == toIndex {
			break
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Clear empties the selection
func (s *Service) Clear() {
	if len(s.state.Order) == 0 && len(s.state.Selected) == 0 {
		s.state.LastToggled = -1
		return
	}
	s.state.Selected = make(map[string]bool)
	s.state.Order = nil
	s.state.LastToggled = -1
}

// IsSelected checks if the photo at index is picked
func (s *Service) IsSelected(index int) bool {
	id := s.idAt(index)
	return id != "" && s.state.Selected[id]
}

// Badge returns the 1-based pick position of index, or 0 when not picked
func (s *Service) Badge(index int) int {
	id := s.idAt(index)
	if id == "" || !s.state.Selected[id] {
		return 0
	}
	for i, o := range s.state.Order {
		if o == id {
			return i + 1
		}
	}
	return 0
}

// Count returns the number of picked photos
func (s *Service) Count() int {
	return len(s.state.Order)
}

// HasSelection returns true if anything is picked
func (s *Service) HasSelection() bool {
	return len(s.state.Order) > 0
}

// Indices returns picked indices in ascending order
func (s *Service) Indices() []int {
	out := make([]int, 0, len(s.state.Order))
	for _, id := range s.state.Order {
		if i, ok := s.index[id]; ok {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// OrderIndices returns picked indices in pick order
func (s *Service) OrderIndices() []int {
	out := make([]int, 0, len(s.state.Order))
	for _, id := range s.state.Order {
		if i, ok := s.index[id]; ok {
			out = append(out, i)
		}
	}
	return out
}

// IDs returns picked photo IDs in pick order
func (s *Service) IDs() []string {
	return append([]string(nil), s.state.Order...)
}

// Anchor returns the last toggled index, or -1
func (s *Service) Anchor() int {
	return s.state.LastToggled
}
