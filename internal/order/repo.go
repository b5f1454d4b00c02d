package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// List returns orders newest-first; status "" means no filter.
	List(ctx context.Context, status Status) ([]Order, error)
	// UpdateStatus applies a compare-and-swap on (id, from): it only writes
	// when the stored status still equals from. A miss on an existing order
	// is ErrStaleTransition, a missing order is ErrNotFound.
	UpdateStatus(ctx context.Context, id string, from, to Status, courier string) error
	// CreatedBetween returns orders created in [from, to), newest-first,
	// without their line items (enough for analytics rollups).
	CreatedBetween(ctx context.Context, from, to time.Time) ([]Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `
	id, customer_name, customer_phone, delivery_address, delivery_zone,
	payment_method, delivery_notes, subtotal, delivery_fee, total, status,
	assigned_courier, estimated_delivery, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (
			id, customer_name, customer_phone, delivery_address, delivery_zone,
			payment_method, delivery_notes, subtotal, delivery_fee, total, status,
			assigned_courier, estimated_delivery, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, o.ID, o.Delivery.CustomerName, o.Delivery.CustomerPhone, o.Delivery.Address, o.Delivery.Zone,
		o.PaymentMethod, o.DeliveryNotes, o.Subtotal, o.DeliveryFee, o.Total, o.Status,
		o.AssignedCourier, o.EstimatedDelivery, o.CreatedAt, o.UpdatedAt); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, menu_item_id, name, unit_price, quantity, instructions)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, uuid.NewString(), o.ID, it.MenuItemID, it.Name, it.UnitPrice, it.Quantity, it.Instructions); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	if err := r.db.QueryRow(ctx, `SELECT`+orderColumns+` FROM orders WHERE id=$1`, id).
		Scan(orderDest(&o)...); err != nil {
		return nil, ErrNotFound
	}

	items, err := r.itemsFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	return &o, nil
}

func (r *PGRepo) List(ctx context.Context, status Status) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, ids, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, from, to Status, courier string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $3,
		    assigned_courier = COALESCE(NULLIF($4,''), assigned_courier),
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
	`, id, from, to, courier)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// CAS miss: tell the caller whether the order vanished or just moved on.
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStaleTransition
}

func (r *PGRepo) CreatedBetween(ctx context.Context, from, to time.Time) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, _, err := scanOrders(rows)
	return out, err
}

func (r *PGRepo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT order_id, menu_item_id, name, unit_price, quantity, instructions
		FROM order_items
		WHERE order_id = ANY($1)
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Item, len(orderIDs))
	for rows.Next() {
		var orderID string
		var it Item
		if err := rows.Scan(&orderID, &it.MenuItemID, &it.Name, &it.UnitPrice, &it.Quantity, &it.Instructions); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}

func orderDest(o *Order) []any {
	return []any{
		&o.ID, &o.Delivery.CustomerName, &o.Delivery.CustomerPhone, &o.Delivery.Address, &o.Delivery.Zone,
		&o.PaymentMethod, &o.DeliveryNotes, &o.Subtotal, &o.DeliveryFee, &o.Total, &o.Status,
		&o.AssignedCourier, &o.EstimatedDelivery, &o.CreatedAt, &o.UpdatedAt,
	}
}

func scanOrders(rows pgx.Rows) ([]Order, []string, error) {
	var out []Order
	var ids []string
	for rows.Next() {
		var o Order
		if err := rows.Scan(orderDest(&o)...); err != nil {
			return nil, nil, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	return out, ids, rows.Err()
}
