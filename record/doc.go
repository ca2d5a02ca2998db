// Package record defines the raw and normalized record shapes shared by the
// alignment pipeline, and the normalizer that converts provider-specific
// fields into the canonical attribute set.
package record
