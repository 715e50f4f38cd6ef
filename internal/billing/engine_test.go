package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func fixedEngine() Engine {
	return Engine{
		Store: "Om Guru Store",
		Now:   func() time.Time { return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC) },
	}
}

func TestComputeSingleItem(t *testing.T) {
	bill := fixedEngine().Compute([]LineItem{
		{Product: "Cow Ghee", Qty: 3, Unit: "kg", Price: d("12.50")},
	})
	if len(bill.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(bill.Items))
	}
	if got := bill.Items[0].Amount.StringFixed(2); got != "37.50" {
		t.Fatalf("expected amount 37.50, got %s", got)
	}
	if got := bill.Total.StringFixed(2); got != "37.50" {
		t.Fatalf("expected total 37.50, got %s", got)
	}
}

func TestComputeTotalOrderIndependent(t *testing.T) {
	items := []LineItem{
		{Product: "A", Qty: 2, Unit: "kg", Price: d("50")},
		{Product: "B", Qty: 1, Unit: "L", Price: d("180")},
		{Product: "C", Qty: 7, Unit: "g", Price: d("0.35")},
	}
	reversed := []LineItem{items[2], items[1], items[0]}

	forward := fixedEngine().Compute(items)
	backward := fixedEngine().Compute(reversed)
	if !forward.Total.Equal(backward.Total) {
		t.Fatalf("totals differ: %s vs %s", forward.Total, backward.Total)
	}
	// Row order still follows input (catalog) order.
	if forward.Items[0].Product != "A" || backward.Items[0].Product != "C" {
		t.Fatalf("row order must follow input order")
	}
}

func TestComputeSkipsNonQualifying(t *testing.T) {
	bill := fixedEngine().Compute([]LineItem{
		{Product: "Sugar", Qty: 0, Unit: "kg", Price: d("45")},
		{Product: "Salt", Qty: 2, Unit: "kg", Price: d("0")},
		{Product: "Rice", Qty: 2, Unit: "kg", Price: d("50")},
	})
	if len(bill.Items) != 1 {
		t.Fatalf("expected 1 qualifying item, got %d", len(bill.Items))
	}
	if bill.Items[0].Product != "Rice" {
		t.Fatalf("expected Rice to survive, got %s", bill.Items[0].Product)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	bill := fixedEngine().Compute(nil)
	if len(bill.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(bill.Items))
	}
	if !bill.Total.IsZero() {
		t.Fatalf("expected zero total, got %s", bill.Total)
	}
}

func TestComputeScenario(t *testing.T) {
	bill := fixedEngine().Compute([]LineItem{
		{Product: "Rice", Qty: 2, Unit: "kg", Price: d("50.00")},
		{Product: "Sugar", Qty: 0, Unit: "kg", Price: d("45.00")},
		{Product: "Oil", Qty: 1, Unit: "L", Price: d("180.00")},
	})
	if len(bill.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(bill.Items))
	}
	if got := bill.Items[0].Amount.StringFixed(2); got != "100.00" {
		t.Fatalf("expected Rice amount 100.00, got %s", got)
	}
	if got := bill.Items[1].Amount.StringFixed(2); got != "180.00" {
		t.Fatalf("expected Oil amount 180.00, got %s", got)
	}
	if got := bill.Total.StringFixed(2); got != "280.00" {
		t.Fatalf("expected total 280.00, got %s", got)
	}
}
