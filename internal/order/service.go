package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MikeMC777/pizzeria-storefront/internal/cart"
	"github.com/MikeMC777/pizzeria-storefront/internal/catalog"
	"github.com/MikeMC777/pizzeria-storefront/internal/pricing"
)

// deliveryLeadTime is the fixed promise made at checkout.
const deliveryLeadTime = 45 * time.Minute

type Service struct {
	repo    Repository
	catalog catalog.Repository
	now     func() time.Time
}

func NewService(repo Repository, cat catalog.Repository) *Service {
	return &Service{repo: repo, catalog: cat, now: time.Now}
}

// Create validates the line items against the catalog, prices the order and
// persists it with status received. Either the whole order is created with a
// valid quote, or nothing is written.
func (s *Service) Create(ctx context.Context, lines []cart.Line, delivery DeliveryInfo, payment PaymentMethod, notes string) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	prices := make(map[string]int64, len(lines))
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, l.MenuItemID)
		}
		m, err := s.catalog.GetByID(ctx, l.MenuItemID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownItem, l.MenuItemID)
			}
			return nil, err
		}
		prices[m.ID] = m.Price
		items = append(items, Item{
			MenuItemID:   m.ID,
			Name:         m.Name,
			UnitPrice:    m.Price,
			Quantity:     l.Quantity,
			Instructions: l.Instructions,
		})
	}

	quote := pricing.Compute(cart.Cart{Lines: lines}, func(id string) int64 { return prices[id] }, delivery.Zone)

	now := s.now()
	o := &Order{
		ID:                uuid.NewString(),
		Items:             items,
		Delivery:          delivery,
		PaymentMethod:     payment,
		DeliveryNotes:     notes,
		Subtotal:          quote.Subtotal,
		DeliveryFee:       quote.DeliveryFee,
		Total:             quote.Total,
		Status:            StatusReceived,
		EstimatedDelivery: now.Add(deliveryLeadTime),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status Status) ([]Order, error) {
	return s.repo.List(ctx, status)
}

// Transition moves an order to a new status. The check against the
// transition table uses the status read here, and the repository re-checks
// it at write time: if another staff member got there first, the caller gets
// ErrStaleTransition and can retry against the fresh status.
func (s *Service) Transition(ctx context.Context, id string, to Status, courier string) (*Order, error) {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(cur.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, cur.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, id, cur.Status, to, courier); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
