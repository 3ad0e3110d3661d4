package splice

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ib-77/pnext/pkg/chain"
)

// Splice is a live attachment of one node to the tail of a chain.
type Splice struct {
	id        uuid.UUID
	createdAt time.Time
	node      chain.Node
	nodeNext  chain.Node
	link      *chain.Node // tail's Next field, or the head itself for an empty chain
	prior     chain.Node
	released  bool
	log       *zap.Logger
	strict    bool
}

// Add links node after the current tail of the chain whose head is stored
// in *head. When the chain is empty *head itself is set to node.
//
// node must not be part of any chain. The returned splice must be released,
// usually with defer, before any splice created earlier on the same chain.
func Add(head *chain.Node, node chain.Node, opts ...Option) *Splice {
	o := getOptions(opts)

	if o.Strict {
		if !chain.IsNil(chain.NextOf(node)) || chain.Contains(*head, node) {
			panic(fmt.Errorf("add %s: %w", chain.TagOf(node), chain.ErrLinked))
		}
	}

	link := head
	if tail := chain.Tail(*head); tail != nil {
		link = &tail.Header().Next
	}

	s := &Splice{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		node:      node,
		nodeNext:  node.Header().Next,
		link:      link,
		prior:     *link,
		log:       o.Log,
		strict:    o.Strict,
	}
	*link = node

	s.log.Debug("Node spliced", zap.Stringer("id", s.id), zap.Stringer("tag", chain.TagOf(node)),
		zap.Bool("head", link == head))
	return s
}

// Release detaches the node, restoring the link it replaced. The node's own
// storage is left alone. Calling Release again does nothing.
func (s *Splice) Release() {
	if s.released {
		return
	}

	if s.strict {
		attached := !chain.IsNil(*s.link) && (*s.link).Header() == s.node.Header()
		if !attached || s.node.Header().Next != s.nodeNext {
			panic(fmt.Errorf("release %s: %w", chain.TagOf(s.node), chain.ErrOutOfOrder))
		}
	}

	*s.link = s.prior
	s.released = true

	s.log.Debug("Node detached", zap.Stringer("id", s.id), zap.Stringer("tag", chain.TagOf(s.node)),
		zap.Duration("held", time.Since(s.createdAt)))
}

// Do splices node onto the chain for the duration of fn. The splice is
// released on every way out of fn, panics included.
func Do(head *chain.Node, node chain.Node, fn func() error, opts ...Option) error {
	s := Add(head, node, opts...)
	defer s.Release()

	return fn()
}

func (s *Splice) ID() uuid.UUID {
	return s.id
}

// CreatedAt time of attachment (UTC)
func (s *Splice) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Splice) Node() chain.Node {
	return s.node
}

func (s *Splice) Released() bool {
	return s.released
}
