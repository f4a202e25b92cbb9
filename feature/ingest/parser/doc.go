// Package parser reads raw spreadsheet exports into a uniform row form.
//
// Each supported source format is a tagged dialect implementing the Parser
// interface; the dialect is selected explicitly by the caller, never sniffed
// from the file shape. Dialect differences (column layout, date formats,
// metadata source) stay inside this package so downstream pipeline stages
// are dialect-agnostic.
//
// A file-level problem (unreadable file, missing sheet or column, missing
// SEAG metadata) surfaces as a MalformedInputError and aborts the whole
// file. Row-level data problems are NOT handled here; rows are passed
// through verbatim for the validator to classify.
package parser
