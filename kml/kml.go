package kml

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/theoremus-urban-solutions/transit-align/record"
)

// Document mirrors the subset of KML these layers use: one folder of
// placemarks, each with a point and a SchemaData attribute bag.
type Document struct {
	XMLName xml.Name `xml:"kml"`
	Folder  Folder   `xml:"Document>Folder"`
}

type Folder struct {
	Name       string      `xml:"name"`
	Placemarks []Placemark `xml:"Placemark"`
}

type Placemark struct {
	Coordinates string       `xml:"Point>coordinates"`
	Data        []SimpleData `xml:"ExtendedData>SchemaData>SimpleData"`
}

type SimpleData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Attr returns the value of a named SimpleData entry, or "".
func (p Placemark) Attr(name string) string {
	for _, d := range p.Data {
		if d.Name == name {
			return strings.TrimSpace(d.Value)
		}
	}
	return ""
}

// Load parses a KML layer into raw records. nameField selects the SimpleData
// entry holding the display name; the source publishes no per-placemark id,
// so records are numbered in document order, which is stable per file.
// Placemark coordinates are "lon,lat[,alt]".
func Load(path, dataset, category, nameField string) ([]record.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	records := make([]record.RawRecord, 0, len(doc.Folder.Placemarks))
	for i, pm := range doc.Folder.Placemarks {
		parts := strings.Split(strings.TrimSpace(pm.Coordinates), ",")
		raw := record.RawRecord{
			Dataset:  dataset,
			SourceID: fmt.Sprintf("%d", i),
			Name:     pm.Attr(nameField),
			Category: category,
		}
		if len(parts) >= 2 {
			raw.Longitude = strings.TrimSpace(parts[0])
			raw.Latitude = strings.TrimSpace(parts[1])
		}
		records = append(records, raw)
	}
	return records, nil
}
