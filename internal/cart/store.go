// Package cart keeps the shopper's desired-purchase lines and persists them
// to local storage after every change.
package cart

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"go.uber.org/zap"
)

// StorageKey is the local storage key holding the cart lines.
const StorageKey = "storefront_cart_v1"

// MaxQuantity bounds the quantity of a single line.
const MaxQuantity = 9999

type Storage interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
}

type Store struct {
	mu      sync.Mutex
	items   []domain.CartItem
	storage Storage
	logger  *zap.Logger
}

// Open rehydrates the cart from storage. An absent or malformed payload
// yields an empty cart.
func Open(storage Storage, logger *zap.Logger) *Store {
	s := &Store{storage: storage, logger: logger}

	data, ok, err := storage.Load(StorageKey)
	if err != nil {
		logger.Warn("Failed to read cart", zap.Error(err))
		return s
	}
	if !ok {
		return s
	}

	var stored []domain.CartItem
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Debug("Ignoring malformed cart payload", zap.Error(err))
		return s
	}
	for _, item := range stored {
		if item.Quantity <= 0 {
			continue
		}
		if i := s.index(item); i >= 0 {
			s.items[i].Quantity = min(s.items[i].Quantity+min(item.Quantity, MaxQuantity), MaxQuantity)
			continue
		}
		item.Quantity = min(item.Quantity, MaxQuantity)
		s.items = append(s.items, item)
	}
	return s
}

// AddItem merges into the line with the same (productId, size, color) or
// appends a new line at the end. A line never exceeds MaxQuantity; an add
// that would push it past the limit leaves the cart unchanged.
func (s *Store) AddItem(item domain.CartItem) error {
	if err := checkQuantity(item.Quantity); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(item); i >= 0 {
		if s.items[i].Quantity > MaxQuantity-item.Quantity {
			return quantityError()
		}
		s.items[i].Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}
	s.persist()
	return nil
}

// RemoveItem drops every line of productID when variant is nil, otherwise
// only lines whose size and color both match the variant.
func (s *Store) RemoveItem(productID int64, variant *domain.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.CartItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ProductID == productID && (variant == nil || it.Variant().Matches(*variant)) {
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	s.persist()
}

// SetQuantity adjusts the matching line in place. A non-positive quantity
// removes it. It reports whether a line matched.
func (s *Store) SetQuantity(productID int64, variant domain.Variant, quantity int) (bool, error) {
	if quantity > MaxQuantity {
		return false, quantityError()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(domain.CartItem{ProductID: productID, Size: variant.Size, Color: variant.Color})
	if i < 0 {
		return false, nil
	}
	if quantity <= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = quantity
	}
	s.persist()
	return true, nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist()
}

// Items returns the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the total quantity across lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// persist writes the full line set. Callers hold mu.
func (s *Store) persist() {
	items := s.items
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("Failed to encode cart", zap.Error(err))
		return
	}
	if err := s.storage.Save(StorageKey, data); err != nil {
		s.logger.Error("Failed to persist cart", zap.Error(err))
	}
}

// index returns the position of the line sharing item's identity, or -1.
func (s *Store) index(item domain.CartItem) int {
	for i, it := range s.items {
		if it.SameLine(item) {
			return i
		}
	}
	return -1
}

func checkQuantity(q int) error {
	if q <= 0 {
		return domain.NewValidationError("quantity", domain.CodeInvalidQuantity, "Quantity must be a positive integer")
	}
	if q > MaxQuantity {
		return quantityError()
	}
	return nil
}

func quantityError() error {
	return domain.NewValidationError("quantity", domain.CodeInvalidQuantity,
		fmt.Sprintf("Quantity per line cannot exceed %d", MaxQuantity))
}
