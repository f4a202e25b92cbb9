// Package models defines the canonical event reference schema and the
// deterministic identifier composition shared by the resolver and the
// event edit endpoints.
package models
