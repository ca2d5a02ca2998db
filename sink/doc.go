// Package sink persists a finished alignment result. Two encodings are
// supported: a single entities.json file, and a SQLite database with entity
// and provenance tables. Sinks consume the result only after the engine has
// validated it; a failed run never reaches a sink.
package sink
