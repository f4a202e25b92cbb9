// Package commit persists a reviewed ingestion run. All writes for one
// file happen inside a single transaction, and results are upserted on
// their natural key, so commits are idempotent and never half-applied.
package commit
