package record

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cleanNameTransformer decomposes to NFD, drops combining marks, then
// recomposes. "Müllerstraße" -> "Mullerstraße" style diacritic folding.
var cleanNameTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts a RawRecord into its canonical form. It is total over
// well-tagged input: every field except the source identifier may be missing
// or malformed, and degrades to an explicit absent value instead of an error.
// The only failure mode is a record that cannot be identified at all.
func Normalize(raw RawRecord) (NormalizedRecord, error) {
	if strings.TrimSpace(raw.SourceID) == "" {
		return NormalizedRecord{}, fmt.Errorf("record in dataset %q has no source identifier", raw.Dataset)
	}

	rec := NormalizedRecord{
		Dataset:     raw.Dataset,
		SourceID:    strings.TrimSpace(raw.SourceID),
		DisplayName: strings.TrimSpace(raw.Name),
		Category:    strings.ToLower(strings.TrimSpace(raw.Category)),
	}
	rec.CleanName = CleanName(rec.DisplayName)

	lat, latOK := parseCoordinate(raw.Latitude)
	lon, lonOK := parseCoordinate(raw.Longitude)
	if latOK && lonOK && lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180 {
		rec.Latitude = lat
		rec.Longitude = lon
		rec.HasCoordinates = true
	}

	seen := map[string]struct{}{}
	for _, id := range raw.Identifiers {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		rec.AuxIdentifiers = append(rec.AuxIdentifiers, id)
	}
	sort.Strings(rec.AuxIdentifiers)

	return rec, nil
}

// CleanName produces the comparison form of a display name: lowercase,
// diacritics folded, punctuation dropped, whitespace collapsed.
func CleanName(name string) string {
	folded, _, err := transform.String(cleanNameTransformer, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FirstNameToken returns the first token of the clean name, or "" when the
// record has no usable name.
func (r *NormalizedRecord) FirstNameToken() string {
	if r.CleanName == "" {
		return ""
	}
	if i := strings.IndexByte(r.CleanName, ' '); i >= 0 {
		return r.CleanName[:i]
	}
	return r.CleanName
}

// parseCoordinate accepts plain decimal degrees; a comma decimal separator is
// tolerated since several regional feeds publish it.
func parseCoordinate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
