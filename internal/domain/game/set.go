package game

import "slices"

// IDSet is a set of catalog ids
type IDSet[K ~string] map[K]struct{}

// NewIDSet builds a set from ids
func NewIDSet[K ~string](ids ...K) IDSet[K] {
	s := make(IDSet[K], len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet[K]) Has(id K) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet[K]) Add(id K) {
	s[id] = struct{}{}
}

// Sorted lists the members in lexical order
func (s IDSet[K]) Sorted() []K {
	out := make([]K, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s IDSet[K]) Clone() IDSet[K] {
	out := make(IDSet[K], len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
