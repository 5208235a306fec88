package repository

import "time"

// SavedLocation is a user-named shortcut to a manifest path.
type SavedLocation struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
