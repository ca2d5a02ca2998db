// Package config loads and validates the application configuration: the
// datasets to align, the matching weights and thresholds, and the output sink.
package config
