package model

import "strings"

// NullType is the synthetic marker that makes a type clause nullable.
const NullType = "null"

// typeSet is an insertion-ordered set of type names.
type typeSet struct {
	types []string
}

func normalizeType(name string) string {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, NullType) {
		return NullType
	}
	return name
}

// AddType adds name to the set. "?T" adds T and null, "A|B" adds each member.
func (s *typeSet) AddType(name string) {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "|") {
		for _, part := range strings.Split(name, "|") {
			s.AddType(part)
		}
		return
	}
	if strings.HasPrefix(name, "?") {
		s.AddType(name[1:])
		s.AddType(NullType)
		return
	}
	name = normalizeType(name)
	if name == "" || s.HasType(name) {
		return
	}
	s.types = append(s.types, name)
}

// SetTypes replaces the whole set.
func (s *typeSet) SetTypes(names []string) {
	s.types = nil
	for _, name := range names {
		s.AddType(name)
	}
}

func (s *typeSet) RemoveType(name string) {
	name = normalizeType(name)
	for i, t := range s.types {
		if t == name {
			s.types = append(s.types[:i], s.types[i+1:]...)
			return
		}
	}
}

func (s *typeSet) HasType(name string) bool {
	name = normalizeType(name)
	for _, t := range s.types {
		if t == name {
			return true
		}
	}
	return false
}

func (s *typeSet) Types() []string {
	return append([]string(nil), s.types...)
}

func (s *typeSet) IsNullable() bool {
	return s.HasType(NullType)
}

func (s *typeSet) SetNullable(nullable bool) {
	if nullable {
		s.AddType(NullType)
	} else {
		s.RemoveType(NullType)
	}
}

// typesToString renders the type clause. A single real type plus null uses
// the "?T" form; a union already spells null out, so it keeps it in place.
func (s *typeSet) typesToString() string {
	nonNull := 0
	first := ""
	for _, t := range s.types {
		if t == NullType {
			continue
		}
		if nonNull == 0 {
			first = t
		}
		nonNull++
	}

	switch {
	case nonNull == 0:
		return ""
	case nonNull == 1 && s.IsNullable():
		return "?" + first
	case s.IsNullable():
		return strings.Join(s.types, "|")
	}

	out := make([]string, 0, nonNull)
	for _, t := range s.types {
		if t != NullType {
			out = append(out, t)
		}
	}
	return strings.Join(out, "|")
}
