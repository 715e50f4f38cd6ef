// Package share builds manual share-intent URLs pre-filled with receipt
// text. The service never sends anything itself; the merchant opens the link
// in the messaging app of their choice.
package share

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnknownChannel is returned for channels this service cannot link to.
var ErrUnknownChannel = errors.New("unknown share channel")

// Supported channels.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
)

// Link returns a share-intent URL for the given channel carrying the receipt
// text. Newlines travel as %0A; spaces are encoded as %20 rather than "+"
// because mailto and sms handlers take the query literally.
func Link(channel, subject, text string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(channel)) {
	case ChannelWhatsApp:
		return "https://wa.me/?text=" + escape(text), nil
	case ChannelEmail:
		return "mailto:?subject=" + escape(subject) + "&body=" + escape(text), nil
	case ChannelSMS:
		return "sms:?body=" + escape(text), nil
	default:
		return "", ErrUnknownChannel
	}
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
