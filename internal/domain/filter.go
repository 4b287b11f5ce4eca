package domain

// FilterState is one conversation's multi-select filter: one set of selected
// canonical keys per dimension. An empty set means no constraint on that
// dimension. FilterState lives in memory only and is lost on restart.
type FilterState struct {
	selections map[Dimension]map[string]struct{}
}

// NewFilterState returns a state with all four sets empty.
func NewFilterState() *FilterState {
	s := &FilterState{selections: make(map[Dimension]map[string]struct{}, len(Dimensions))}
	for _, d := range Dimensions {
		s.selections[d] = make(map[string]struct{})
	}
	return s
}

// Toggle adds key to the dimension's set if absent, removes it if present,
// and reports whether the key is selected afterwards. Keys outside the
// dimension's vocabulary are ignored.
func (s *FilterState) Toggle(d Dimension, key string) bool {
	if _, ok := d.Canonical(key); !ok {
		return false
	}
	set := s.selections[d]
	if _, ok := set[key]; ok {
		delete(set, key)
		return false
	}
	set[key] = struct{}{}
	return true
}

// Selected reports whether key is currently in the dimension's set.
func (s *FilterState) Selected(d Dimension, key string) bool {
	_, ok := s.selections[d][key]
	return ok
}

// Keys returns the dimension's selected keys in vocabulary order.
func (s *FilterState) Keys(d Dimension) []string {
	set := s.selections[d]
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for _, v := range d.Values() {
		if _, ok := set[v.Key]; ok {
			keys = append(keys, v.Key)
		}
	}
	return keys
}

// Count returns how many values the dimension has selected.
func (s *FilterState) Count(d Dimension) int {
	return len(s.selections[d])
}

// Empty reports whether no dimension has a selection (universal filter).
func (s *FilterState) Empty() bool {
	for _, d := range Dimensions {
		if len(s.selections[d]) > 0 {
			return false
		}
	}
	return true
}

// Reset clears all four sets.
func (s *FilterState) Reset() {
	for _, d := range Dimensions {
		s.selections[d] = make(map[string]struct{})
	}
}

// Clone returns an independent copy, used to build queries without holding
// the session registry lock.
func (s *FilterState) Clone() *FilterState {
	c := NewFilterState()
	for _, d := range Dimensions {
		for k := range s.selections[d] {
			c.selections[d][k] = struct{}{}
		}
	}
	return c
}
