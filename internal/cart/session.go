package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

// Session mirrors one customer's active cart in memory. Every mutation goes
// through the store and the mirror is rebuilt from it afterwards; the store
// stays the only source of truth.
type Session struct {
	mu         sync.Mutex
	customerID string
	store      Store
	logg       *logger.Logger
	items      []models.CartItem
	loading    bool
}

// NewSession builds a session bound to a customer.
func NewSession(customerID string, store Store, logg *logger.Logger) (*Session, error) {
	if customerID == "" {
		return nil, fmt.Errorf("customer id required")
	}
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Session{customerID: customerID, store: store, logg: logg}, nil
}

// Load rebuilds the mirror from the store.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked(ctx)
}

func (s *Session) reloadLocked(ctx context.Context) error {
	s.loading = true
	defer func() { s.loading = false }()

	items, err := s.store.GetCartItems(ctx, s.customerID)
	if err != nil {
		return err
	}
	s.items = items
	return nil
}

// AddItem adds quantity of the product to the cart. A product from a
// different restaurant than the current items clears the cart first, keeping
// one restaurant per cart.
func (s *Session) AddItem(ctx context.Context, product *models.Product, quantity int, notes string) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product required")
	}
	if product.RestaurantID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product has no restaurant")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The switch check must see the durable cart, not whatever the mirror
	// last saw: a fresh session starts empty even when a cart persists.
	if err := s.reloadLocked(ctx); err != nil {
		return err
	}

	if len(s.items) > 0 && s.mirrorRestaurantLocked() != product.RestaurantID {
		if err := s.clearLocked(ctx); err != nil {
			return err
		}
	}

	err := s.store.AddToCart(ctx, AddToCartInput{
		CustomerID:   s.customerID,
		RestaurantID: product.RestaurantID,
		ProductID:    product.ID,
		Quantity:     quantity,
		Price:        product.Price,
		Notes:        notes,
	})
	if err != nil {
		return err
	}

	return s.reloadLocked(ctx)
}

// RemoveItem deletes one item. A store failure never surfaces: the mirror is
// filtered locally so reads stay consistent with what the customer expects.
func (s *Session) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.RemoveFromCart(ctx, itemID); err != nil {
		if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"cart_item_id": itemID.String(),
				"error":        err.Error(),
			}), "cart item removal failed, dropping from mirror")
			s.filterLocked(itemID)
			return nil
		}
	}

	return s.reloadLocked(ctx)
}

// ClearCart removes every current item one by one and empties the mirror.
// Removal errors are aggregated rather than aborting the sweep.
func (s *Session) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

func (s *Session) clearLocked(ctx context.Context) error {
	var errs error
	for _, item := range s.items {
		if err := s.store.RemoveFromCart(ctx, item.ID); err != nil && !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			errs = multierr.Append(errs, err)
		}
	}
	s.items = nil
	return errs
}

func (s *Session) filterLocked(itemID uuid.UUID) {
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
}

func (s *Session) mirrorRestaurantLocked() int64 {
	for _, item := range s.items {
		if item.Product != nil {
			return item.Product.RestaurantID
		}
	}
	return 0
}

// Items returns a copy of the mirrored cart items.
func (s *Session) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total is the subtotal over the mirror, recomputed on every call.
func (s *Session) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// IsLoading reports whether a store round-trip is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Manager hands out one session per customer.
type Manager struct {
	mu       sync.Mutex
	store    Store
	logg     *logger.Logger
	sessions map[string]*Session
}

// NewManager builds the session registry.
func NewManager(store Store, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{store: store, logg: logg, sessions: map[string]*Session{}}, nil
}

// Session returns the session for the customer, creating it on first use.
func (m *Manager) Session(customerID string) (*Session, error) {
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[customerID]; ok {
		return session, nil
	}
	session, err := NewSession(customerID, m.store, m.logg)
	if err != nil {
		return nil, err
	}
	m.sessions[customerID] = session
	return session, nil
}
