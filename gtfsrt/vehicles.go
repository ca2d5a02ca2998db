package gtfsrt

import (
	"fmt"
	"os"
	"strconv"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/transit-align/record"
)

// LoadVehicles decodes a FeedMessage snapshot file and returns one raw record
// per vehicle position entity. The vehicle label is the display name; the
// vehicle id doubles as an auxiliary identifier when the provider sets one.
func LoadVehicles(path, dataset, category string) ([]record.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	feed := &gtfsrtpb.FeedMessage{}
	if err := proto.Unmarshal(data, feed); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var records []record.RawRecord
	for _, ent := range feed.GetEntity() {
		vp := ent.GetVehicle()
		if vp == nil {
			continue
		}
		raw := record.RawRecord{
			Dataset:  dataset,
			SourceID: ent.GetId(),
			Category: category,
		}
		if desc := vp.GetVehicle(); desc != nil {
			raw.Name = desc.GetLabel()
			if id := desc.GetId(); id != "" {
				raw.Identifiers = append(raw.Identifiers, id)
				if raw.SourceID == "" {
					raw.SourceID = id
				}
			}
		}
		if pos := vp.GetPosition(); pos != nil {
			raw.Latitude = strconv.FormatFloat(float64(pos.GetLatitude()), 'f', -1, 64)
			raw.Longitude = strconv.FormatFloat(float64(pos.GetLongitude()), 'f', -1, 64)
		}
		records = append(records, raw)
	}
	return records, nil
}
