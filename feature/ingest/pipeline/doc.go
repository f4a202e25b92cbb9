// Package pipeline chains the ingestion stages for one file: parsed rows
// are event-resolved, matched against a roster snapshot and validated into
// a Run. Preview and commit consume the same Run, so an operator reviews
// exactly what a commit would write.
package pipeline
