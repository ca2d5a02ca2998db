package gtfsrt

import (
	"os"
	"path/filepath"
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func writeSnapshot(t *testing.T, feed *gtfsrtpb.FeedMessage) string {
	t.Helper()
	data, err := proto.Marshal(feed)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "vehicles.pb")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadVehicles(t *testing.T) {
	feed := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("ent-1"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Vehicle: &gtfsrtpb.VehicleDescriptor{
						Id:    proto.String("bus-042"),
						Label: proto.String("Linea 5"),
					},
					Position: &gtfsrtpb.Position{
						Latitude:  proto.Float32(46.07),
						Longitude: proto.Float32(11.12),
					},
				},
			},
			{
				// Trip update only, no vehicle position.
				Id:         proto.String("ent-2"),
				TripUpdate: &gtfsrtpb.TripUpdate{Trip: &gtfsrtpb.TripDescriptor{}},
			},
			{
				// Blank entity id: required by the proto2 schema but treated
				// as absent by LoadVehicles.
				Id: proto.String(""),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Vehicle: &gtfsrtpb.VehicleDescriptor{Id: proto.String("bus-007")},
				},
			},
		},
	}

	records, err := LoadVehicles(writeSnapshot(t, feed), "vehicles", "vehicle")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 vehicle records, got %d", len(records))
	}

	first := records[0]
	if first.SourceID != "ent-1" || first.Name != "Linea 5" {
		t.Errorf("unexpected record: %+v", first)
	}
	if len(first.Identifiers) != 1 || first.Identifiers[0] != "bus-042" {
		t.Errorf("vehicle id should be an identifier: %v", first.Identifiers)
	}
	if first.Latitude == "" || first.Longitude == "" {
		t.Errorf("position not carried: %+v", first)
	}

	// Entity id absent: the vehicle descriptor id stands in.
	if records[1].SourceID != "bus-007" {
		t.Errorf("descriptor id fallback failed: %+v", records[1])
	}
}

func TestLoadVehiclesBadPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pb")
	if err := os.WriteFile(path, []byte("\xff\xff\xff not a feed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadVehicles(path, "vehicles", ""); err == nil {
		t.Fatal("expected decode error")
	}
}
