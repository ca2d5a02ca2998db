package bikeshare

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/theoremus-urban-solutions/transit-align/record"
)

// Station is one bike-sharing station as published. Position is [lat, lon].
type Station struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Bikes      int       `json:"bikes"`
	Slots      int       `json:"slots"`
	TotalSlots int       `json:"totalSlots"`
	Position   []float64 `json:"position"`
}

// Load parses the station feed into raw records. The operator id doubles as
// an auxiliary identifier since other providers cross-reference it.
func Load(path, dataset, category string) ([]record.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stations []Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	records := make([]record.RawRecord, 0, len(stations))
	for _, st := range stations {
		raw := record.RawRecord{
			Dataset:  dataset,
			SourceID: st.ID,
			Name:     st.Name,
			Category: category,
		}
		if len(st.Position) >= 2 {
			raw.Latitude = strconv.FormatFloat(st.Position[0], 'f', -1, 64)
			raw.Longitude = strconv.FormatFloat(st.Position[1], 'f', -1, 64)
		}
		if st.ID != "" {
			raw.Identifiers = []string{st.ID}
		}
		records = append(records, raw)
	}
	return records, nil
}
