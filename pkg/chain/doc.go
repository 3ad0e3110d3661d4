// Package chain defines heterogeneous tagged singly-linked chains: sequences
// of caller-owned records, each identified by a Tag and carrying a link to
// the next record, as used by extensible APIs to hang optional extension
// structs off a root struct.
//
// Every record type embeds Base as its first field, which makes a pointer to
// it a Node. The package never allocates or frees records on behalf of a
// chain; chains only link storage the caller already owns.
//
// Highlights:
// - Base/Node/Typed: the common "tag + next" shape and the static tag of a variant
// - Init: build a record with its tag set (tests and examples)
// - Walk/Tags/Len/Tail/Find/Contains: forward traversal helpers
// - HasCycle: detect malformed chains in debug checks
//
// The subpackages build on it: schema declares ordered recognized tags,
// extract copies a chain into canonical order, splice appends a record for
// the duration of a scope.
package chain
