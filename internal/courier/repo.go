// Package courier manages the delivery-staff roster.
package courier

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("courier not found")
)

type Courier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Available bool      `json:"is_available"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, c *Courier) error
	List(ctx context.Context, onlyAvailable bool) ([]Courier, error)
	GetByID(ctx context.Context, id string) (*Courier, error)
	SetAvailable(ctx context.Context, id string, available bool) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, c *Courier) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO couriers (id, name, phone, is_available, created_at)
		VALUES ($1,$2,$3,$4,NOW())
	`, c.ID, c.Name, c.Phone, c.Available)
	return err
}

func (r *PGRepo) List(ctx context.Context, onlyAvailable bool) ([]Courier, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, phone, is_available, created_at
		FROM couriers
		WHERE (NOT $1 OR is_available)
		ORDER BY name
	`, onlyAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Courier
	for rows.Next() {
		var c Courier
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Available, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Courier, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Courier
	err := r.db.QueryRow(ctx, `
		SELECT id, name, phone, is_available, created_at
		FROM couriers WHERE id=$1
	`, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Available, &c.CreatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *PGRepo) SetAvailable(ctx context.Context, id string, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE couriers SET is_available=$2 WHERE id=$1
	`, id, available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
