// Package catalog provides the menu item repository and its PostgreSQL implementation.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("menu item not found")
)

type Repository interface {
	List(ctx context.Context) ([]MenuItem, error)
	ListByCategory(ctx context.Context, cat Category) ([]MenuItem, error)
	GetByID(ctx context.Context, id string) (*MenuItem, error)
	SeedDefaults(ctx context.Context, items []MenuItem) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// advisory lock key for the seed transaction, arbitrary but stable
const seedLockKey = 7340041

func (r *PGRepo) List(ctx context.Context) ([]MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, category, price, image_url, prep_minutes, available, created_at
		FROM menu_items
		WHERE available
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *PGRepo) ListByCategory(ctx context.Context, cat Category) ([]MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, category, price, image_url, prep_minutes, available, created_at
		FROM menu_items
		WHERE available AND category=$1
		ORDER BY name
	`, cat)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var m MenuItem
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, category, price, image_url, prep_minutes, available, created_at
		FROM menu_items WHERE id=$1
	`, id).Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.ImageURL, &m.PrepMinutes, &m.Available, &m.CreatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &m, nil
}

// SeedDefaults inserts the starter menu. Seed IDs are stable, so a rerun
// (or a concurrent run on another instance) inserts nothing new. The
// advisory lock serializes simultaneous seed transactions at process start.
func (r *PGRepo) SeedDefaults(ctx context.Context, items []MenuItem) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		return err
	}
	for _, m := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_items (id, name, description, category, price, image_url, prep_minutes, available, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
			ON CONFLICT (id) DO NOTHING
		`, m.ID, m.Name, m.Description, m.Category, m.Price, m.ImageURL, m.PrepMinutes, m.Available); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func scanItems(rows pgx.Rows) ([]MenuItem, error) {
	var out []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.ImageURL, &m.PrepMinutes, &m.Available, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
