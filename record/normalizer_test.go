package record

import (
	"testing"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase and trim",
			input:    "  Via Roma  ",
			expected: "via roma",
		},
		{
			name:     "punctuation stripped",
			input:    "V. Roma (centro)",
			expected: "v roma centro",
		},
		{
			name:     "diacritics folded",
			input:    "Piazza Venète",
			expected: "piazza venete",
		},
		{
			name:     "german sharp s kept",
			input:    "Müllerstraße",
			expected: "mullerstraße",
		},
		{
			name:     "whitespace collapsed",
			input:    "Porta   Nuova\tFS",
			expected: "porta nuova fs",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon string
		wantHas  bool
		wantLat  float64
	}{
		{
			name:    "valid decimal degrees",
			lat:     "46.070",
			lon:     "11.121",
			wantHas: true,
			wantLat: 46.070,
		},
		{
			name:    "comma decimal separator",
			lat:     "46,070",
			lon:     "11,121",
			wantHas: true,
			wantLat: 46.070,
		},
		{
			name: "latitude out of range",
			lat:  "91.0",
			lon:  "11.0",
		},
		{
			name: "longitude out of range",
			lat:  "46.0",
			lon:  "-181.0",
		},
		{
			name: "unparseable text",
			lat:  "n/a",
			lon:  "11.0",
		},
		{
			name: "missing",
			lat:  "",
			lon:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Normalize(RawRecord{Dataset: "a", SourceID: "1", Latitude: tt.lat, Longitude: tt.lon})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.HasCoordinates != tt.wantHas {
				t.Fatalf("HasCoordinates = %v, want %v", rec.HasCoordinates, tt.wantHas)
			}
			if tt.wantHas && rec.Latitude != tt.wantLat {
				t.Errorf("latitude = %v, want %v", rec.Latitude, tt.wantLat)
			}
		})
	}
}

func TestNormalizeMissingSourceID(t *testing.T) {
	if _, err := Normalize(RawRecord{Dataset: "a", Name: "Via Roma"}); err == nil {
		t.Fatal("expected error for record without source identifier")
	}
	if _, err := Normalize(RawRecord{Dataset: "a", SourceID: "   "}); err == nil {
		t.Fatal("expected error for blank source identifier")
	}
}

func TestNormalizeIdentifiers(t *testing.T) {
	rec, err := Normalize(RawRecord{
		Dataset:     "a",
		SourceID:    "1",
		Identifiers: []string{" STOP-445 ", "", "STOP-445", "ZONE-9"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"STOP-445", "ZONE-9"}
	if len(rec.AuxIdentifiers) != len(want) {
		t.Fatalf("identifiers = %v, want %v", rec.AuxIdentifiers, want)
	}
	for i := range want {
		if rec.AuxIdentifiers[i] != want[i] {
			t.Fatalf("identifiers = %v, want %v", rec.AuxIdentifiers, want)
		}
	}
}

func TestNormalizePreservesDisplayName(t *testing.T) {
	rec, err := Normalize(RawRecord{Dataset: "a", SourceID: "1", Name: "  Piazza Dante  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.DisplayName != "Piazza Dante" {
		t.Errorf("display name = %q", rec.DisplayName)
	}
	if rec.CleanName != "piazza dante" {
		t.Errorf("clean name = %q", rec.CleanName)
	}
}

func TestFirstNameToken(t *testing.T) {
	rec := NormalizedRecord{CleanName: "via roma"}
	if tok := rec.FirstNameToken(); tok != "via" {
		t.Errorf("token = %q", tok)
	}
	rec = NormalizedRecord{CleanName: "roma"}
	if tok := rec.FirstNameToken(); tok != "roma" {
		t.Errorf("token = %q", tok)
	}
	rec = NormalizedRecord{}
	if tok := rec.FirstNameToken(); tok != "" {
		t.Errorf("token = %q", tok)
	}
}
