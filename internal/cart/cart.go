package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/modaline/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// LineItem is one cart line. Two lines never share a
// (productID, size, color) key; adding to an existing key increments
// quantity instead.
type LineItem struct {
	ProductID string  `dynamodbav:"product_id" json:"productId"`
	Name      string  `dynamodbav:"name" json:"name"`
	Price     float64 `dynamodbav:"price" json:"price"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity"`
	Size      string  `dynamodbav:"size,omitempty" json:"size,omitempty"`
	Color     string  `dynamodbav:"color,omitempty" json:"color,omitempty"`
	Image     string  `dynamodbav:"image,omitempty" json:"image,omitempty"`
}

func (li LineItem) key() lineKey {
	return lineKey{li.ProductID, li.Size, li.Color}
}

type lineKey struct {
	productID, size, color string
}

// Persister flushes the full item list after every mutation. Production
// uses the DynamoDB adapter; tests inject an in-memory one.
type Persister interface {
	Load(ctx context.Context, cartID string) ([]LineItem, error)
	Save(ctx context.Context, cartID string, items []LineItem) error
}

// Notifier is told about every applied mutation so the storefront can
// surface it to the shopper. NopNotifier is the default.
type Notifier interface {
	CartChanged(action string, item LineItem)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) CartChanged(string, LineItem) {}

// Store holds one cart's state. All mutations persist the full list before
// announcing the change.
type Store struct {
	mu        sync.Mutex
	cartID    string
	items     []LineItem
	persister Persister
	notifier  Notifier
}

// Open loads the cart identified by cartID, creating an empty one if the
// persister has nothing for it.
func Open(ctx context.Context, cartID string, p Persister, n Notifier) (*Store, error) {
	if n == nil {
		n = NopNotifier{}
	}
	items, err := p.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return &Store{
		cartID:    cartID,
		items:     items,
		persister: p,
		notifier:  n,
	}, nil
}

// AddItem merges qty of a product variant into the cart. A line with the
// same (productID, size, color) key gains quantity; otherwise a new line is
// appended with the product's current price snapshot.
func (s *Store) AddItem(ctx context.Context, p catalog.Product, qty int, size, color string) error {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item := LineItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Size:      size,
		Color:     color,
	}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}

	merged := false
	for i := range s.items {
		if s.items[i].key() == item.key() {
			s.items[i].Quantity += qty
			item = s.items[i]
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}

	return s.flush(ctx, "add", item)
}

// RemoveItem drops the line matching the key. Removing an absent key is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID, size, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := lineKey{productID, size, color}
	for i := range s.items {
		if s.items[i].key() == k {
			removed := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.flush(ctx, "remove", removed)
		}
	}
	return nil
}

// UpdateQuantity replaces the quantity of the matching line, clamped to 1.
// An absent key is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID, size, color string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := lineKey{productID, size, color}
	for i := range s.items {
		if s.items[i].key() == k {
			s.items[i].Quantity = qty
			return s.flush(ctx, "update", s.items[i])
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.flush(ctx, "clear", LineItem{})
}

// Items returns a copy of the current lines.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of per-line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	return total
}

// flush persists then notifies; callers hold the lock.
func (s *Store) flush(ctx context.Context, action string, item LineItem) error {
	if err := s.persister.Save(ctx, s.cartID, s.items); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.notifier.CartChanged(action, item)
	return nil
}
