// Package database provides the GORM database connection and schema helpers.
//
// Connect opens either a MySQL connection (production) or an SQLite file /
// in-memory database (development, tests) depending on configuration. The
// inspector helpers read raw column definitions so the start command can
// verify that the result tables carry the columns the upsert key depends on.
package database
