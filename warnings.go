package transitalign

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Warning type constants
const (
	WarningMissingSourceID   = "missing_source_id"
	WarningDuplicateSourceID = "duplicate_source_id"
	WarningBadCoordinates    = "bad_coordinates"
	WarningEmptyName         = "empty_name"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects per-record problems during normalization and
// outputs consolidated summaries instead of one log line per record.
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns how many occurrences of a warning type were recorded.
func (w *WarningAggregator) Count(warningType string) int {
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// Total returns the number of recorded occurrences across all types.
func (w *WarningAggregator) Total() int {
	n := 0
	for _, info := range w.warnings {
		n += info.count
	}
	return n
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll(dataset string) {
	if len(w.warnings) == 0 {
		return
	}

	types := make([]string, 0, len(w.warnings))
	for warningType := range w.warnings {
		types = append(types, warningType)
	}
	sort.Strings(types)
	for _, warningType := range types {
		log.Printf("%s", w.formatWarningMessage(warningType, dataset, w.warnings[warningType]))
	}
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(warningType, dataset string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningMissingSourceID:
		description = "records with no source identifier"
		action = "Excluding them from the alignment pass"
	case WarningDuplicateSourceID:
		description = "records repeating a source identifier already seen in the dataset"
		action = "Keeping the first occurrence only"
	case WarningBadCoordinates:
		description = "records with unparseable or out-of-range coordinates"
		action = "Aligning them on name and identifier evidence only"
	case WarningEmptyName:
		description = "records with no display name"
		action = "Aligning them on coordinate and identifier evidence only"
	default:
		description = "unknown issue"
		action = "Continuing with fallback behavior"
	}

	examplesStr := strings.Join(info.examples, ", ")

	return fmt.Sprintf("Dataset %s has %s (%d occurrences). %s. Examples: %s",
		dataset, description, info.count, action, examplesStr)
}
