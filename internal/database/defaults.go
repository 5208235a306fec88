package database

import (
	"context"
	"database/sql"

	"github.com/jask/spawncodes/internal/database/repository"
)

// SeedLocations copies locs into an empty saved_locations table, so a user
// switching from the file backend keeps their shortcuts. It is a no-op once
// the table has rows and safe to run on every startup.
func SeedLocations(ctx context.Context, db *sql.DB, locs []repository.SavedLocation) (bool, error) {
	repo := repository.NewLocationRepo(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 || len(locs) == 0 {
		return false, nil
	}
	return true, repo.Save(ctx, locs)
}
