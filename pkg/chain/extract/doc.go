// Package extract copies the records of an arbitrary chain that a schema
// recognizes into fixed typed storage and relinks them in canonical schema
// order, independently of the order they appeared in the input.
//
// An extracted set is a struct with one Of[T] slot per schema position,
// normally generated from a schema declaration. Extract walks the input once,
// copies each recognized record by value into its slot (first occurrence
// wins), then links the occupied slots together. The resulting chain lives
// entirely in the set's own storage and never aliases the input nodes, and
// the input chain is left untouched.
package extract
