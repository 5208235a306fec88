package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/spawncodes/internal/database/repository"
)

// LocationBackend loads and saves the whole saved-location collection.
type LocationBackend interface {
	Load(ctx context.Context) ([]repository.SavedLocation, error)
	Save(ctx context.Context, locs []repository.SavedLocation) error
}

// LocationStore is the in-memory owner of saved locations. The backend is
// read once on open and rewritten in full after every mutation.
type LocationStore struct {
	backend LocationBackend

	mu    sync.Mutex
	items []repository.SavedLocation
}

func OpenLocationStore(ctx context.Context, backend LocationBackend) (*LocationStore, error) {
	items, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load saved locations: %w", err)
	}
	return &LocationStore{backend: backend, items: items}, nil
}

// List returns the locations in insertion order.
func (s *LocationStore) List() []repository.SavedLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.SavedLocation, len(s.items))
	copy(out, s.items)
	return out
}

func (s *LocationStore) Get(index int) (repository.SavedLocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return repository.SavedLocation{}, false
	}
	return s.items[index], true
}

// Add validates and appends a location, then persists the collection.
func (s *LocationStore) Add(ctx context.Context, name, path string) error {
	name = strings.TrimSpace(name)
	path = strings.TrimSpace(path)
	if name == "" {
		return &ValidationError{Field: "name", Msg: "Name is required"}
	}
	if path == "" {
		return &ValidationError{Field: "path", Msg: "Path is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, loc := range s.items {
		if strings.EqualFold(loc.Name, name) {
			return &ValidationError{Field: "name", Msg: "Name already exists"}
		}
	}
	next := make([]repository.SavedLocation, len(s.items), len(s.items)+1)
	copy(next, s.items)
	next = append(next, repository.SavedLocation{ID: uuid.NewString(), Name: name, Path: path})
	if err := s.backend.Save(ctx, next); err != nil {
		return fmt.Errorf("save locations: %w", err)
	}
	s.items = next
	return nil
}

// Remove deletes the location at index. Out of range indexes are ignored.
func (s *LocationStore) Remove(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return nil
	}
	next := make([]repository.SavedLocation, 0, len(s.items)-1)
	next = append(next, s.items[:index]...)
	next = append(next, s.items[index+1:]...)
	if err := s.backend.Save(ctx, next); err != nil {
		return fmt.Errorf("save locations: %w", err)
	}
	s.items = next
	return nil
}

// Find looks a location up by name, case-insensitively.
func (s *LocationStore) Find(name string) (int, repository.SavedLocation, bool) {
	name = strings.TrimSpace(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, loc := range s.items {
		if strings.EqualFold(loc.Name, name) {
			return i, loc, true
		}
	}
	return -1, repository.SavedLocation{}, false
}

// Suggest returns the saved name closest to name by edit distance.
func (s *LocationStore) Suggest(name string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	s.mu.Lock()
	defer s.mu.Unlock()
	best, bestDist := "", -1
	for _, loc := range s.items {
		d := levenshtein.ComputeDistance(q, strings.ToLower(loc.Name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = loc.Name, d
		}
	}
	if bestDist < 0 || bestDist > max(3, len(q)/2) {
		return "", false
	}
	return best, true
}
