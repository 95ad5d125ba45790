package publish

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const manifestVersion = 1

// Manifest lists what an export produced.
type Manifest struct {
	Version     int                  `json:"version"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Pages       []string             `json:"pages"`
	Sources     map[string]time.Time `json:"sources"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version: manifestVersion,
		Pages:   []string{},
		Sources: map[string]time.Time{},
	}
}

// ReadManifest loads basePath/manifest.json, returning an empty manifest alongside any error.
func ReadManifest(basePath string) (Manifest, error) {
	f, err := os.Open(filepath.Join(basePath, manifestName))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Sources == nil {
		m.Sources = map[string]time.Time{}
	}
	return m, nil
}
