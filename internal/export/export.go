// Package export turns a computed bill into downloadable artifacts. Every
// renderer is a pure transform: no shared state, no files on disk, safe to
// call concurrently against different bills.
package export

import (
	"errors"

	"github.com/noah-isme/backend-billing/internal/billing"
)

// ErrEncode wraps any failure inside an artifact encoder. A failed export
// never produces a partial buffer and never affects the bill itself.
var ErrEncode = errors.New("encode export artifact")

// Text returns the canonical receipt rendering as UTF-8 bytes.
func Text(b billing.Bill) []byte {
	return []byte(billing.FormatText(b))
}
