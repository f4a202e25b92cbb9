// Package preview renders the non-destructive review artifact for an
// ingestion run: a spreadsheet annotating every row MATCHED or UNMATCHED
// plus the aggregate counts, with zero persistence side effects.
package preview
