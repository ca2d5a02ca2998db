package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/theoremus-urban-solutions/transit-align/record"
)

// LoadStops reads stops.txt from a GTFS zip and returns one raw record per
// stop. stop_code is carried as an auxiliary identifier when present; stop_id
// is not, since it is feed-internal and collides across providers. Missing
// columns simply leave the corresponding field empty.
func LoadStops(path, dataset, category string) ([]record.RawRecord, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if strings.ToLower(f.Name) == "stops.txt" {
			return consumeStops(f, dataset, category)
		}
	}
	return nil, fmt.Errorf("no stops.txt in %s", path)
}

func consumeStops(f *zip.File, dataset, category string) ([]record.RawRecord, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, nil
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	sID := idx("stop_id")
	sCode := idx("stop_code")
	sN := idx("stop_name")
	sLat := idx("stop_lat")
	sLon := idx("stop_lon")

	field := func(row []string, i int) string {
		if i >= 0 && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	records := make([]record.RawRecord, 0, len(rec)-1)
	for _, row := range rec[1:] {
		raw := record.RawRecord{
			Dataset:   dataset,
			SourceID:  field(row, sID),
			Name:      field(row, sN),
			Latitude:  field(row, sLat),
			Longitude: field(row, sLon),
			Category:  category,
		}
		if code := field(row, sCode); code != "" {
			raw.Identifiers = append(raw.Identifiers, code)
		}
		records = append(records, raw)
	}
	return records, nil
}
