// Package blocking groups normalized records into candidate buckets so that
// pairwise comparison stays near-linear instead of quadratic. Records with
// valid coordinates are keyed by a geographic grid cell; every named record is
// additionally keyed by its first name token, which is the only derived key
// available to records without coordinates, and by each of its auxiliary
// identifiers so that explicit cross-references always surface as candidates.
// Blocking can miss true matches that fall in no shared bucket; that is a
// documented trade-off of the design.
package blocking
