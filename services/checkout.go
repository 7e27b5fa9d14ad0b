package services

import "swiftdine/models"

const (
	ReasonAddressTooShort = "address_too_short"

	minAddressLen = 10
)

// CheckoutResult is a validation outcome, not an error: rejections are
// user-correctable and surfaced as a reason string.
type CheckoutResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// ValidateCheckout gates order placement. Payment-form field syntax
// (card number, CVV, UPI id) is a presentation concern and is not
// checked here.
func ValidateCheckout(s models.Session) CheckoutResult {
	if len(s.DeliveryAddress) < minAddressLen {
		return CheckoutResult{Reason: ReasonAddressTooShort}
	}
	return CheckoutResult{OK: true}
}
