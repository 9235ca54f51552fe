package cart

import (
	"encoding/json"
	"sync"

	"github.com/cometcontrol/comet-backend/pkg/types"
)

// DefaultStoreName is the fixed key the cart blob is persisted under.
const DefaultStoreName = "comet-quote-cart"

// Snapshot is the immutable product data captured when a product is added.
type Snapshot struct {
	ProductID    string                `json:"productId"`
	ProductSlug  string                `json:"productSlug"`
	ProductSKU   string                `json:"productSku"`
	ProductName  types.LocalizedString `json:"productName"`
	ProductImage string                `json:"productImage"`
	UnitPrice    *types.Price          `json:"unitPrice,omitempty"`
}

// Store holds the client's quote cart: at most one line per product, in
// insertion order, persisted after every mutation so the cart survives
// restarts. Mutations clamp or no-op instead of failing; the cart is a
// convenience cache, not a ledger. Persistence is best-effort for the same
// reason. Concurrent writers follow last-writer-wins; there is no cross-
// process locking.
type Store struct {
	mu      sync.Mutex
	name    string
	storage Storage
	items   []types.CartItem
}

// Option configures optional store behavior.
type Option func(*Store)

// WithStoreName overrides the persistence key.
func WithStoreName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.name = name
		}
	}
}

// NewStore loads any previously persisted cart from storage. A missing or
// unreadable blob yields an empty cart rather than an error.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		name:    DefaultStoreName,
		storage: storage,
	}
	for _, opt := range opts {
		opt(s)
	}

	if storage != nil {
		if data, err := storage.Load(s.name); err == nil && len(data) > 0 {
			var items []types.CartItem
			if err := json.Unmarshal(data, &items); err == nil {
				s.items = items
			}
		}
	}
	return s
}

// AddItem merges the product into the cart: an existing line has its quantity
// incremented by exactly one (notes preserved), a new product becomes a fresh
// line with quantity 1 and empty notes.
func (s *Store) AddItem(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == snap.ProductID {
			s.items[i].Quantity++
			s.persist()
			return
		}
	}

	s.items = append(s.items, types.CartItem{
		ProductID:    snap.ProductID,
		ProductSlug:  snap.ProductSlug,
		ProductSKU:   snap.ProductSKU,
		ProductName:  snap.ProductName,
		ProductImage: snap.ProductImage,
		UnitPrice:    snap.UnitPrice,
		Quantity:     1,
		Notes:        "",
	})
	s.persist()
}

// RemoveItem deletes the matching line; absent products are a no-op.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}

// UpdateQuantity sets the line's quantity, clamped to a floor of 1. Removal
// is an explicit separate operation, never a side effect of a low quantity.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			if quantity < 1 {
				quantity = 1
			}
			s.items[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// UpdateNotes replaces the line's notes verbatim, including the empty string.
func (s *Store) UpdateNotes(productID, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Notes = notes
			s.persist()
			return
		}
	}
}

// Clear empties the cart unconditionally. The client contract is to call this
// once a quote submission reached a terminal outcome, success or failure.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []types.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount returns the quantity-weighted total across all lines, used for
// badge display.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for i := range s.items {
		total += s.items[i].Quantity
	}
	return total
}

// persist writes the full cart state after a mutation. Failures are swallowed
// on purpose: losing a save degrades the cart to session-only, which beats
// failing a UI action. Callers hold s.mu.
func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	data, err := json.Marshal(s.items)
	if err != nil {
		return
	}
	_ = s.storage.Save(s.name, data)
}
