package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// LocationRepo stores saved locations in sqlite, ordered by position.
type LocationRepo struct {
	db *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

func (r *LocationRepo) Load(ctx context.Context) ([]SavedLocation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, path, created_at FROM saved_locations ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SavedLocation
	for rows.Next() {
		var l SavedLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.Path, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Save replaces the stored collection with locs in one transaction.
func (r *LocationRepo) Save(ctx context.Context, locs []SavedLocation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_locations`); err != nil {
		_ = tx.Rollback()
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO saved_locations(id, position, name, path, created_at)
	VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i, l := range locs {
		id := l.ID
		if id == "" {
			id = uuid.NewString()
		}
		created := l.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC().Truncate(time.Second)
		}
		if _, err := stmt.ExecContext(ctx, id, i, l.Name, l.Path, created); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *LocationRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_locations`).Scan(&n)
	return n, err
}
