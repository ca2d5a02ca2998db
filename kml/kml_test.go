package kml

import (
	"os"
	"path/filepath"
	"testing"
)

const taxiLayer = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <name>taxi</name>
      <Placemark>
        <ExtendedData>
          <SchemaData>
            <SimpleData name="nome">Stazione FS</SimpleData>
            <SimpleData name="posti">8</SimpleData>
          </SchemaData>
        </ExtendedData>
        <Point>
          <coordinates>11.119,46.072,0</coordinates>
        </Point>
      </Placemark>
      <Placemark>
        <ExtendedData>
          <SchemaData>
            <SimpleData name="nome">Piazza Dante</SimpleData>
          </SchemaData>
        </ExtendedData>
        <Point>
          <coordinates>11.121,46.070</coordinates>
        </Point>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func writeLayer(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layer.kml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	records, err := Load(writeLayer(t, taxiLayer), "taxi", "taxi", "nome")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.SourceID != "0" || first.Name != "Stazione FS" {
		t.Errorf("unexpected record: %+v", first)
	}
	// KML coordinates are lon,lat order.
	if first.Latitude != "46.072" || first.Longitude != "11.119" {
		t.Errorf("coordinate order wrong: %+v", first)
	}
	if records[1].SourceID != "1" || records[1].Latitude != "46.070" {
		t.Errorf("second placemark: %+v", records[1])
	}
}

func TestLoadUnknownNameField(t *testing.T) {
	records, err := Load(writeLayer(t, taxiLayer), "taxi", "taxi", "denominazione")
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Name != "" {
		t.Errorf("missing attribute should leave the name empty, got %q", records[0].Name)
	}
}

func TestLoadBadXML(t *testing.T) {
	if _, err := Load(writeLayer(t, "<kml><unclosed"), "taxi", "taxi", "nome"); err == nil {
		t.Fatal("expected parse error")
	}
}
