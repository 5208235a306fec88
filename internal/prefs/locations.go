package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/spawncodes/internal/database/repository"
)

const locationsVersion = 1

type locationsDoc struct {
	Version   int                        `json:"version"`
	Locations []repository.SavedLocation `json:"locations"`
}

// LocationsFile keeps saved locations in one JSON document.
type LocationsFile struct {
	Path string
}

func (f *LocationsFile) Load(ctx context.Context) ([]repository.SavedLocation, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeLocations(data)
}

// decodeLocations also accepts a bare array of {name, path} records.
func decodeLocations(data []byte) ([]repository.SavedLocation, error) {
	var doc locationsDoc
	if err := json.Unmarshal(data, &doc); err == nil {
		if doc.Version > locationsVersion {
			return nil, fmt.Errorf("locations file version %d is newer than supported %d", doc.Version, locationsVersion)
		}
		return doc.Locations, nil
	}
	var locs []repository.SavedLocation
	if err := json.Unmarshal(data, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// Save rewrites the whole file via a temp file and rename.
func (f *LocationsFile) Save(ctx context.Context, locs []repository.SavedLocation) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	if locs == nil {
		locs = []repository.SavedLocation{}
	}
	data, err := json.MarshalIndent(locationsDoc{Version: locationsVersion, Locations: locs}, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
