package visibility

import (
	"encoding/json"
	"slices"
)

// IDSet is an allow-list of ids. A nil *IDSet is unscoped and admits every
// id; an empty non-nil set admits none.
type IDSet struct {
	ids map[string]struct{}
}

func NewIDSet(ids ...string) *IDSet {
	s := &IDSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *IDSet) Add(ids ...string) {
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
}

// Allows reports whether id passes the filter. Unscoped sets allow all.
func (s *IDSet) Allows(id string) bool {
	if s == nil {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

// AllowsAny reports whether at least one of ids passes the filter.
func (s *IDSet) AllowsAny(ids []string) bool {
	if s == nil {
		return true
	}
	for _, id := range ids {
		if s.Allows(id) {
			return true
		}
	}
	return false
}

func (s *IDSet) Unscoped() bool { return s == nil }

func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the members sorted, or nil for an unscoped set.
func (s *IDSet) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s *IDSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.IDs())
}
