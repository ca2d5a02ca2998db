// Package gtfsrt loads vehicle positions from a GTFS-Realtime protobuf
// snapshot and exposes them as raw records for the alignment engine. A
// snapshot is a FeedMessage saved to disk; the engine is a batch pass, so
// there is no live polling here.
package gtfsrt
