// Package splice temporarily appends a record to the tail of a chain and
// guarantees the chain gets its previous shape back when the scope ends.
//
//	s := splice.Add(&head, ext)
//	defer s.Release()
//
// Every Add locates the current tail on its own, so splices nest freely as
// long as they are released in reverse order of creation, which deferred
// Release calls give for free. Do wraps the pattern for a callback.
package splice
