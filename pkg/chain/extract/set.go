package extract

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/ib-77/pnext/pkg/chain"
	"github.com/ib-77/pnext/pkg/chain/schema"
)

var ErrSlotMismatch = errors.New("slot does not match schema")

// Set is an extracted set: one slot per schema position, in schema order.
type Set interface {
	Schema() *schema.Schema
	Slot(i int) Slot
}

// Check verifies that set has exactly one slot per schema tag, in order.
func Check(set Set) error {
	s := set.Schema()

	var err error
	for i := 0; i < s.Len(); i++ {
		slot := set.Slot(i)
		if slot == nil {
			err = multierr.Append(err, fmt.Errorf("%s: position %d: no slot: %w", s.Name(), i, ErrSlotMismatch))
			continue
		}
		if slot.Tag() != s.Tag(i) {
			err = multierr.Append(err, fmt.Errorf("%s: position %d: slot accepts %s, schema expects %s: %w",
				s.Name(), i, slot.Tag(), s.Tag(i), ErrSlotMismatch))
		}
	}
	return err
}

// Slots is a Set assembled at run time from individual slots.
type Slots struct {
	schema *schema.Schema
	slots  []Slot
}

// NewSlots builds a set whose schema is derived from the slots' own tags.
func NewSlots(name string, slots ...Slot) (*Slots, error) {
	tags := make([]chain.Tag, 0, len(slots))
	for _, slot := range slots {
		tags = append(tags, slot.Tag())
	}
	s, err := schema.New(name, tags...)
	if err != nil {
		return nil, err
	}
	return &Slots{schema: s, slots: slots}, nil
}

func (s *Slots) Schema() *schema.Schema {
	return s.schema
}

func (s *Slots) Slot(i int) Slot {
	return s.slots[i]
}

// Occupied counts the slots holding a record.
func Occupied(set Set) int {
	count := 0
	for i := 0; i < set.Schema().Len(); i++ {
		if slot := set.Slot(i); slot != nil && slot.Occupied() {
			count++
		}
	}
	return count
}
