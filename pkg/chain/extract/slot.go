package extract

import (
	"github.com/ib-77/pnext/pkg/chain"
)

type fillResult int

const (
	filled fillResult = iota
	duplicate
	mismatch
)

// Slot is one schema position of an extracted set.
type Slot interface {
	// Tag returns the tag this slot accepts
	Tag() chain.Tag
	// Occupied reports whether the slot holds a copied record
	Occupied() bool
	// Node returns the slot's storage as a chain node, nil when empty
	Node() chain.Node

	fill(n chain.Node) fillResult
	reset()
}

// Variant is satisfied by record types whose value knows its tag. T must
// also embed chain.Base so that *T is a chain.Node.
type Variant interface {
	StructureType() chain.Tag
}

// Of is a slot storing a T by value.
type Of[T Variant] struct {
	val      T
	occupied bool
}

func (s *Of[T]) Tag() chain.Tag {
	var zero T
	return zero.StructureType()
}

func (s *Of[T]) Occupied() bool {
	return s.occupied
}

func (s *Of[T]) Node() chain.Node {
	if !s.occupied {
		return nil
	}
	return any(&s.val).(chain.Node)
}

// Value returns a copy of the stored record
func (s *Of[T]) Value() (T, bool) {
	return s.val, s.occupied
}

// Ptr returns the stored record in place, nil when empty
func (s *Of[T]) Ptr() *T {
	if !s.occupied {
		return nil
	}
	return &s.val
}

func (s *Of[T]) fill(n chain.Node) fillResult {
	if s.occupied {
		return duplicate
	}
	src, ok := any(n).(*T)
	if !ok {
		return mismatch
	}
	s.val = *src
	s.occupied = true
	return filled
}

func (s *Of[T]) reset() {
	var zero T
	s.val = zero
	s.occupied = false
}
