package sink

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	transitalign "github.com/theoremus-urban-solutions/transit-align"
)

const schema = `
CREATE TABLE entity (
	id          TEXT PRIMARY KEY,
	name        TEXT,
	latitude    REAL,
	longitude   REAL,
	category    TEXT,
	identifiers TEXT
);
CREATE TABLE entity_source (
	entity_id TEXT NOT NULL REFERENCES entity(id),
	dataset   TEXT NOT NULL,
	source_id TEXT NOT NULL,
	PRIMARY KEY (entity_id, dataset, source_id)
);
`

// WriteSQLite writes the result as entities.sqlite under dir, replacing any
// previous run. Returns the written path.
func WriteSQLite(dir string, res *transitalign.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "entities.sqlite")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return "", err
	}

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	insEntity, err := tx.Prepare(`INSERT INTO entity (id, name, latitude, longitude, category, identifiers) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer insEntity.Close()
	insSource, err := tx.Prepare(`INSERT INTO entity_source (entity_id, dataset, source_id) VALUES (?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer insSource.Close()

	for _, e := range res.Entities {
		var lat, lon any
		if e.Latitude != nil {
			lat = *e.Latitude
		}
		if e.Longitude != nil {
			lon = *e.Longitude
		}
		if _, err := insEntity.Exec(e.ID, e.Name, lat, lon, e.Category, strings.Join(e.Identifiers, ",")); err != nil {
			return "", err
		}
		for _, src := range e.Sources {
			if _, err := insSource.Exec(e.ID, src.Dataset, src.SourceID); err != nil {
				return "", err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return path, nil
}
