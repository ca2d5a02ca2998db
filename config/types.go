package config

// DatasetConfig declares one input dataset to load and align.
type DatasetConfig struct {
	Name     string `yaml:"name" validate:"required"`
	Kind     string `yaml:"kind" validate:"required,oneof=gtfs kml bikeshare gtfsrt"`
	Path     string `yaml:"path" validate:"required"`
	Category string `yaml:"category"`
	// NameField selects the KML SimpleData entry holding the display name
	// (feeds disagree: nomepos, desc, park, nome). Ignored by other kinds.
	NameField string `yaml:"nameField"`
}

// MatchingConfig is the tunable surface of the scorer and resolver.
type MatchingConfig struct {
	NameWeight             float64 `yaml:"nameWeight" validate:"gte=0,lte=1"`
	SpatialWeight          float64 `yaml:"spatialWeight" validate:"gte=0,lte=1"`
	IdentifierWeight       float64 `yaml:"identifierWeight" validate:"gte=0,lte=1"`
	SpatialMaxRadiusMeters float64 `yaml:"spatialMaxRadiusMeters" validate:"gt=0"`
	MatchThreshold         float64 `yaml:"matchThreshold" validate:"gte=0,lte=1"`
	MinClusterThreshold    float64 `yaml:"minClusterThreshold" validate:"gte=0,lte=1"`
}

// OutputConfig selects the sink for the alignment result.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format" validate:"omitempty,oneof=json sqlite"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Datasets []DatasetConfig `yaml:"datasets"`
	Matching MatchingConfig  `yaml:"matching"`
	Output   OutputConfig    `yaml:"output"`
}
