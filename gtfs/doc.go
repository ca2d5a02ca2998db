// Package gtfs loads stop records from a static GTFS zip archive and exposes
// them as raw records for the alignment engine.
package gtfs
