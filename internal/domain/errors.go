package domain

import "fmt"

// SourceNotFoundError indicates a required source file is absent. The
// station metadata file is required; yearly archives are not (an absent
// year is a silent skip, never this error).
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source not found: %s", e.Path)
}

// ParseError indicates a source file contained malformed JSON. Fatal: the
// load aborts and no partial dataset is returned.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates a record is missing a required field. Fatal for
// station features (station identity is foundational); measurement records
// with schema gaps are dropped and counted instead.
type SchemaError struct {
	File  string
	Field string
	Index int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s: feature %d missing %q", e.File, e.Index, e.Field)
}
