// Package match reconciles raw result rows against the athlete roster.
//
// The matcher is a pure function over an immutable roster snapshot: exact
// lookup on (normalized name, birthdate, gender) first, then a Jaro-Winkler
// fuzzy fallback with an explicit, tunable threshold. It classifies every
// row as matched, name-mismatch, club-miss or unmatched and never creates
// or mutates roster records.
package match
