package gtfs

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeFeed(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStops(t *testing.T) {
	path := writeFeed(t, map[string]string{
		"stops.txt": "stop_id,stop_code,stop_name,stop_lat,stop_lon\n" +
			"21415,150x,Via Roma,46.070,11.121\n" +
			"21416,,Piazza Dante,46.072,11.119\n",
		"routes.txt": "route_id\n1\n",
	})

	records, err := LoadStops(path, "urban", "stop")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.SourceID != "21415" || first.Name != "Via Roma" {
		t.Errorf("unexpected record: %+v", first)
	}
	if first.Latitude != "46.070" || first.Longitude != "11.121" {
		t.Errorf("coordinates not carried: %+v", first)
	}
	if first.Dataset != "urban" || first.Category != "stop" {
		t.Errorf("dataset/category not stamped: %+v", first)
	}
	if len(first.Identifiers) != 1 || first.Identifiers[0] != "150x" {
		t.Errorf("stop_code should be the only identifier, got %v", first.Identifiers)
	}
	if len(records[1].Identifiers) != 0 {
		t.Errorf("empty stop_code must not yield an identifier: %v", records[1].Identifiers)
	}
}

func TestLoadStopsColumnOrderIndependent(t *testing.T) {
	path := writeFeed(t, map[string]string{
		"stops.txt": "stop_name,stop_lon,stop_lat,stop_id\nVia Roma,11.121,46.070,21415\n",
	})
	records, err := LoadStops(path, "urban", "")
	if err != nil {
		t.Fatal(err)
	}
	if records[0].SourceID != "21415" || records[0].Latitude != "46.070" {
		t.Errorf("header lookup failed: %+v", records[0])
	}
}

func TestLoadStopsMissingColumns(t *testing.T) {
	path := writeFeed(t, map[string]string{
		"stops.txt": "stop_id,stop_name\n21415,Via Roma\n",
	})
	records, err := LoadStops(path, "urban", "")
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Latitude != "" || records[0].Longitude != "" {
		t.Errorf("absent columns should stay empty: %+v", records[0])
	}
}

func TestLoadStopsNoStopsFile(t *testing.T) {
	path := writeFeed(t, map[string]string{"routes.txt": "route_id\n1\n"})
	if _, err := LoadStops(path, "urban", ""); err == nil {
		t.Fatal("expected error for feed without stops.txt")
	}
}
