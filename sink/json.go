package sink

import (
	"encoding/json"
	"os"
	"path/filepath"

	transitalign "github.com/theoremus-urban-solutions/transit-align"
)

// WriteJSON writes the result as entities.json under dir, creating the
// directory if needed. Returns the written path.
func WriteJSON(dir string, res *transitalign.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "entities.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
