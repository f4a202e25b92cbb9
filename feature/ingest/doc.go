// Package ingest exposes the spreadsheet ingestion surface: dialect-tagged
// uploads, non-destructive previews and the archive of committed source
// files. The heavy lifting lives in its subpackages (parser, match,
// validate, pipeline, preview, commit).
package ingest
