// Package validate classifies data-quality problems in matched result rows.
//
// Problems never abort a run; they are collected into per-category issue
// buckets and reported alongside the successful counts. Each row also gets
// an admissibility verdict: rows with a fatal issue (invalid time, no
// roster match, unknown event) are excluded from commit but still reported.
// Whether club misses and name mismatches block commit is a policy choice
// carried in Config rather than hard-coded.
package validate
