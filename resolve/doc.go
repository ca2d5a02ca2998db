// Package resolve turns scored candidate pairs into alignment clusters. An
// undirected graph is built with an edge wherever the composite score reaches
// the match threshold; its connected components form the initial clusters.
// Similarity is not transitive, so components larger than two go through a
// guard pass that splits off members whose minimum pairwise score to the rest
// of the cluster falls below the stricter minimum-cluster threshold, and that
// never leaves two records of the same dataset in one cluster. Records with
// no qualifying edge stay as singleton clusters.
package resolve
