package session

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-billing/internal/billing"
	"github.com/noah-isme/backend-billing/internal/catalog"
)

var (
	// ErrNegativeQty rejects a negative quantity input.
	ErrNegativeQty = errors.New("quantity must not be negative")
	// ErrNegativePrice rejects a negative unit price input.
	ErrNegativePrice = errors.New("unit price must not be negative")
)

// Entry holds the per-product input triple captured from the billing form.
// Zero quantity or price marks the product as not part of the next bill.
type Entry struct {
	Qty   int
	Unit  string
	Price decimal.Decimal
}

// Session owns one merchant's form state: the catalog, the current entry per
// product, and the most recently generated bill. Entries are keyed by product
// name, so renaming a product starts it over with zeroed inputs and removing
// one simply orphans its entry — the same behaviour the billing form has
// always had.
type Session struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	entries map[string]Entry
	bill    *billing.Bill
}

// New creates an empty session over the provided catalog.
func New(c *catalog.Catalog) *Session {
	return &Session{
		catalog: c,
		entries: make(map[string]Entry),
	}
}

// Catalog exposes the session's catalog to handlers.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// SetEntry records the input triple for a product. The product must exist in
// the catalog and quantity/price must be non-negative.
func (s *Session) SetEntry(product string, e Entry) error {
	if e.Qty < 0 {
		return ErrNegativeQty
	}
	if e.Price.Sign() < 0 {
		return ErrNegativePrice
	}
	found := false
	for _, name := range s.catalog.Names() {
		if name == product {
			found = true
			break
		}
	}
	if !found {
		return catalog.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[product] = e
	return nil
}

// Entry returns the recorded input for a product, if any.
func (s *Session) Entry(product string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[product]
	return e, ok
}

// Reset zeroes all entries and discards the current bill.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
	s.bill = nil
}

// Collect walks the catalog in order and returns the line items that qualify
// for billing: quantity > 0 and unit price > 0. Entries for products no
// longer in the catalog are ignored.
func (s *Session) Collect() []billing.LineItem {
	names := s.catalog.Names()
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]billing.LineItem, 0, len(names))
	for _, name := range names {
		e, ok := s.entries[name]
		if !ok || e.Qty <= 0 || e.Price.Sign() <= 0 {
			continue
		}
		items = append(items, billing.LineItem{
			Product: name,
			Qty:     e.Qty,
			Unit:    e.Unit,
			Price:   e.Price,
		})
	}
	return items
}

// SetBill stores the bill produced by the latest generation.
func (s *Session) SetBill(b billing.Bill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bill = &b
}

// Bill returns the most recently generated bill, if one exists.
func (s *Session) Bill() (billing.Bill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bill == nil {
		return billing.Bill{}, false
	}
	return *s.bill, true
}
