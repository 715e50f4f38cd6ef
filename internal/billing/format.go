package billing

import (
	"fmt"
	"strings"
)

// Receipt column widths in characters. Text wider than its column is hard-cut
// with no ellipsis; numeric columns render with two fraction digits rounded
// half-up (decimal.StringFixed rounds half away from zero, which is the same
// thing for the non-negative values handled here).
const (
	colItem   = 20
	colQty    = 5
	colUnit   = 6
	colRate   = 8
	colAmount = 10

	ruleWidth = 60
)

const dateLayout = "02-01-2006"

// FormatText renders the canonical fixed-width receipt for a bill. The output
// is a pure function of the bill, uses "\n" as its only control character,
// and is safe to percent-encode into a share URL.
func FormatText(b Bill) string {
	rule := strings.Repeat("-", ruleWidth)

	var sb strings.Builder
	sb.WriteString(b.Store + "\n")
	sb.WriteString("Date: " + b.Date.Format(dateLayout) + "\n")
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "%-*s %*s %-*s %*s %*s\n",
		colItem, "Item", colQty, "Qty", colUnit, "Unit", colRate, "Rate", colAmount, "Amount")
	sb.WriteString(rule + "\n")
	for _, it := range b.Items {
		fmt.Fprintf(&sb, "%-*s %*d %-*s %*s %*s\n",
			colItem, clip(it.Product, colItem),
			colQty, it.Qty,
			colUnit, clip(it.Unit, colUnit),
			colRate, it.Price.StringFixed(2),
			colAmount, it.Amount.StringFixed(2))
	}
	sb.WriteString(rule + "\n")
	// Right-align the grand total under the amount column.
	fmt.Fprintf(&sb, "%*s %*s\n", colItem+colQty+colUnit+colRate+3, "Total", colAmount, b.Total.StringFixed(2))
	sb.WriteString(rule + "\n")
	sb.WriteString("\nThank you for your purchase!\n")
	return sb.String()
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
