// Package gen turns a schema declaration into Go source: record types with
// their tags, a schema per root and the matching extracted-set struct.
package gen
