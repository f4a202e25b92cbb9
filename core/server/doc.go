// Package server holds the HTTP server configuration.
//
// The actual Fiber application is assembled in the start command; this package
// only defines the configuration partial that the config loader binds
// (port, API key, body size limit for spreadsheet uploads).
package server
