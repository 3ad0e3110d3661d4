package schema

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/ib-77/pnext/pkg/chain"
)

var (
	ErrEmpty     = errors.New("schema has no tags")
	ErrZeroTag   = errors.New("schema contains the reserved zero tag")
	ErrDuplicate = errors.New("schema contains duplicate tag")
)

// Schema is an ordered list of distinct recognized tags
type Schema struct {
	name  string
	tags  []chain.Tag
	index map[chain.Tag]int
}

// New validates tags and builds a schema named name. Every problem found is
// reported, combined into a single error.
func New(name string, tags ...chain.Tag) (*Schema, error) {
	var err error
	if len(tags) == 0 {
		err = multierr.Append(err, fmt.Errorf("%s: %w", name, ErrEmpty))
	}

	index := make(map[chain.Tag]int, len(tags))
	for i, tag := range tags {
		if tag == chain.TagNone {
			err = multierr.Append(err, fmt.Errorf("%s: position %d: %w", name, i, ErrZeroTag))
			continue
		}
		if first, ok := index[tag]; ok {
			err = multierr.Append(err, fmt.Errorf("%s: positions %d and %d: %w %s", name, first, i, ErrDuplicate, tag))
			continue
		}
		index[tag] = i
	}
	if err != nil {
		return nil, err
	}

	return &Schema{
		name:  name,
		tags:  append([]chain.Tag(nil), tags...),
		index: index,
	}, nil
}

// MustNew is like New but panics on invalid input, for package level variables.
func MustNew(name string, tags ...chain.Tag) *Schema {
	s, err := New(name, tags...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string {
	return s.name
}

// Len returns K, the number of recognized tags
func (s *Schema) Len() int {
	return len(s.tags)
}

func (s *Schema) Tag(i int) chain.Tag {
	return s.tags[i]
}

// Tags returns a copy of the tags in canonical order
func (s *Schema) Tags() []chain.Tag {
	return append([]chain.Tag(nil), s.tags...)
}

// Index returns the canonical position of tag.
func (s *Schema) Index(tag chain.Tag) (int, bool) {
	i, ok := s.index[tag]
	return i, ok
}

func (s *Schema) Contains(tag chain.Tag) bool {
	_, ok := s.index[tag]
	return ok
}

func (s *Schema) String() string {
	return fmt.Sprintf("%s%v", s.name, s.tags)
}
