package chain

import "errors"

var (
	// ErrCycle reports a chain whose traversal never reaches the terminator
	ErrCycle = errors.New("chain contains a cycle")
	// ErrOutOfOrder reports a scoped splice released while it was no longer the chain's last splice
	ErrOutOfOrder = errors.New("splice released out of order")
	// ErrLinked reports a node that is already linked to a successor
	ErrLinked = errors.New("node is already linked")
)
