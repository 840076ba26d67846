package pages

import (
	"strconv"
	"strings"

	"artvista/models"
)

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormatPrice renders a rupee amount with Indian digit grouping, e.g. ₹2,65,000.
func FormatPrice(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(int64(amount+0.5), 10)

	var b strings.Builder
	if len(digits) > 3 {
		head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
		for i, r := range head {
			if i > 0 && (len(head)-i)%2 == 0 {
				b.WriteByte(',')
			}
			b.WriteRune(r)
		}
		b.WriteByte(',')
		b.WriteString(tail)
	} else {
		b.WriteString(digits)
	}

	if negative {
		return "-₹" + b.String()
	}
	return "₹" + b.String()
}

// StatusLabel converts an artwork status into the badge text shown to curators.
func StatusLabel(status models.ArtworkStatus) string {
	switch status {
	case models.StatusApproved:
		return "On display"
	case models.StatusPending:
		return "Awaiting review"
	default:
		return "Unknown"
	}
}

// Greeting returns the banner text for the signed-in identity.
func Greeting(session models.Session, signedIn bool) string {
	if !signedIn {
		return "Welcome, guest"
	}
	return "Welcome, " + DefaultDash(session.Name)
}
