// Package schema declares which tags may extend a given root record and in
// which order they appear once extracted.
//
// A Schema is immutable after construction. Schemas are normally produced by
// generated code from a YAML declaration (see Decl) rather than built by hand.
package schema
