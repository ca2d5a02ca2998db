// Package kml loads placemark records from KML layers (car sharing bays,
// protected bike parking, taxi stands and similar point datasets) and exposes
// them as raw records for the alignment engine.
package kml
