package extract

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ib-77/pnext/pkg/chain"
)

// Extract copies every record of the chain at head recognized by set's schema
// into its slot and returns the head of the chain linking the occupied slots
// in schema order, or nil when nothing matched.
//
// The set is emptied first. When several input records share a tag the first
// one wins. Records for schema positions the set has no slot for are
// skipped, Check reports such sets. The input chain is only read. head must
// not be cyclic, see WithCycleCheck.
func Extract(head chain.Node, set Set, opts ...Option) chain.Node {
	o := getOptions(opts)
	s := set.Schema()

	if o.CheckCycles && chain.HasCycle(head) {
		panic(fmt.Errorf("extract %s: %w", s.Name(), chain.ErrCycle))
	}

	for i := 0; i < s.Len(); i++ {
		if slot := set.Slot(i); slot != nil {
			slot.reset()
		}
	}

	for n := head; !chain.IsNil(n); n = chain.NextOf(n) {
		tag := n.Header().Type
		i, ok := s.Index(tag)
		if !ok {
			continue
		}

		slot := set.Slot(i)
		if slot == nil {
			o.Log.Warn("Schema position has no slot, record ignored",
				zap.String("schema", s.Name()), zap.Stringer("tag", tag), zap.Int("index", i))
			continue
		}

		switch slot.fill(n) {
		case duplicate:
			o.Log.Debug("Duplicate record ignored",
				zap.String("schema", s.Name()), zap.Stringer("tag", tag), zap.Int("index", i))
		case mismatch:
			o.Log.Warn("Record type does not match its tag, ignored",
				zap.String("schema", s.Name()), zap.Stringer("tag", tag), zap.String("type", fmt.Sprintf("%T", n)))
		}
	}

	return Link(set)
}

// Link rebuilds the canonical chain over the occupied slots of set and
// returns its head.
func Link(set Set) chain.Node {
	var (
		head chain.Node
		prev *chain.Base
	)
	for i := 0; i < set.Schema().Len(); i++ {
		slot := set.Slot(i)
		if slot == nil || !slot.Occupied() {
			continue
		}

		n := slot.Node()
		n.Header().Next = nil
		if prev == nil {
			head = n
		} else {
			prev.Next = n
		}
		prev = n.Header()
	}
	return head
}
