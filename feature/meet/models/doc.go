// Package models defines the meet, result and relay split schema together
// with the closed vocabularies for courses, rounds, statuses and meet
// categories.
package models
