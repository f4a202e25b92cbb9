// Package roster provides read access to the athlete roster: name search
// for manual entry and cached matcher snapshots for the ingestion pipeline.
// The roster is reference data here — ingestion never creates or mutates
// athletes.
package roster
