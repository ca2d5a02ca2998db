package record

// RawRecord is a provider-specific entity description as produced by an input
// adapter. The core treats it as opaque beyond the dataset tag and the
// source-local identifier; all other fields are free-text as published.
type RawRecord struct {
	Dataset     string
	SourceID    string
	Name        string
	Latitude    string
	Longitude   string
	Category    string
	Identifiers []string
}

// NormalizedRecord is the canonical view of a RawRecord. One per RawRecord,
// immutable after creation.
type NormalizedRecord struct {
	Dataset     string
	SourceID    string
	DisplayName string // original form, preserved for output
	CleanName   string // lowercased, punctuation and diacritics stripped

	Latitude       float64
	Longitude      float64
	HasCoordinates bool

	Category       string
	AuxIdentifiers []string // sorted, deduplicated
}

// Key identifies a record uniquely across all datasets.
func (r *NormalizedRecord) Key() string {
	return r.Dataset + "/" + r.SourceID
}

// Completeness counts how many canonical attributes the record carries. Used
// when choosing the canonical representative of a cluster.
func (r *NormalizedRecord) Completeness() int {
	n := 0
	if r.DisplayName != "" {
		n++
	}
	if r.HasCoordinates {
		n++
	}
	if r.Category != "" {
		n++
	}
	if len(r.AuxIdentifiers) > 0 {
		n++
	}
	return n
}
