// Package scoring computes the composite similarity between two normalized
// records as a weighted sum of independent dimensions: textual (normalized
// Levenshtein over clean names), spatial (linear decay of haversine distance
// up to a configured radius) and identifier overlap (exact match). A shared
// identifier is treated as explicit cross-reference evidence and
// short-circuits the score to 1. Dimensions that cannot be evaluated are
// excluded and their weight redistributed among the rest.
package scoring
