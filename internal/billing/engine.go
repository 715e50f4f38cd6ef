package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyBill indicates that no qualifying line items were available when a
// bill generation was requested.
var ErrEmptyBill = errors.New("bill has no qualifying items")

// LineItem is one product's quantity, unit label, and unit price for the
// current bill. Amount is derived by the engine and must not be set by
// callers.
type LineItem struct {
	Product string
	Qty     int
	Unit    string
	Price   decimal.Decimal
	Amount  decimal.Decimal
}

// Bill is the immutable snapshot of qualifying line items plus total for one
// generation event. It is never persisted; exporters consume it and discard.
type Bill struct {
	ID    uuid.UUID
	Store string
	Date  time.Time
	Items []LineItem
	Total decimal.Decimal
}

// Engine computes bill snapshots from collected line items.
type Engine struct {
	// Store is the fixed label printed on every bill.
	Store string
	// Now allows tests to pin the generation clock. Defaults to time.Now.
	Now func() time.Time
}

// Compute derives per-line amounts and the ordered grand total. Entries with
// a non-positive quantity or price are skipped, so the qualifying-items
// invariant holds regardless of caller-side filtering. An empty input yields
// a bill with no items and a zero total; the caller decides whether that is
// worth surfacing as ErrEmptyBill.
func (e Engine) Compute(items []LineItem) Bill {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	kept := make([]LineItem, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		if it.Qty <= 0 || it.Price.Sign() <= 0 {
			continue
		}
		it.Amount = it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))
		kept = append(kept, it)
		total = total.Add(it.Amount)
	}
	return Bill{
		ID:    uuid.New(),
		Store: e.Store,
		Date:  now(),
		Items: kept,
		Total: total,
	}
}
