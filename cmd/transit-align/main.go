package main

import (
	"flag"
	"fmt"
	"log"

	lib "github.com/theoremus-urban-solutions/transit-align"
	"github.com/theoremus-urban-solutions/transit-align/bikeshare"
	"github.com/theoremus-urban-solutions/transit-align/config"
	"github.com/theoremus-urban-solutions/transit-align/gtfs"
	"github.com/theoremus-urban-solutions/transit-align/gtfsrt"
	"github.com/theoremus-urban-solutions/transit-align/kml"
	"github.com/theoremus-urban-solutions/transit-align/record"
	"github.com/theoremus-urban-solutions/transit-align/sink"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to YAML configuration")
	outDir := flag.String("out", "", "output directory (overrides config)")
	format := flag.String("format", "", "json|sqlite (overrides config)")
	flag.Parse()

	lib.InitLogging()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if len(cfg.Datasets) == 0 {
		log.Fatal("configuration declares no datasets")
	}

	datasets := make([]lib.Dataset, 0, len(cfg.Datasets))
	for _, dc := range cfg.Datasets {
		log.Printf("Loading dataset %s (%s) from %s", dc.Name, dc.Kind, dc.Path)
		records, err := loadDataset(dc)
		if err != nil {
			log.Fatalf("dataset %s: %v", dc.Name, err)
		}
		log.Printf("Dataset %s: %d records", dc.Name, len(records))
		datasets = append(datasets, lib.Dataset{Name: dc.Name, Records: records})
	}

	engine, err := lib.NewEngine(cfg)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	result, err := engine.Run(datasets)
	if err != nil {
		log.Fatalf("alignment: %v", err)
	}

	var path string
	switch cfg.Output.Format {
	case "sqlite":
		path, err = sink.WriteSQLite(cfg.Output.Dir, result)
	default:
		path, err = sink.WriteJSON(cfg.Output.Dir, result)
	}
	if err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("Wrote %d entities to %s", len(result.Entities), path)
}

func loadDataset(dc config.DatasetConfig) ([]record.RawRecord, error) {
	switch dc.Kind {
	case "gtfs":
		return gtfs.LoadStops(dc.Path, dc.Name, dc.Category)
	case "kml":
		nameField := dc.NameField
		if nameField == "" {
			nameField = "name"
		}
		return kml.Load(dc.Path, dc.Name, dc.Category, nameField)
	case "bikeshare":
		return bikeshare.Load(dc.Path, dc.Name, dc.Category)
	case "gtfsrt":
		return gtfsrt.LoadVehicles(dc.Path, dc.Name, dc.Category)
	default:
		return nil, fmt.Errorf("unknown dataset kind %q", dc.Kind)
	}
}
