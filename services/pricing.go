package services

import (
	"errors"
	"fmt"
	"math"

	"swiftdine/models"
)

const (
	DefaultDeliveryFee = 30.0
	DefaultPlatformFee = 5.0
	DefaultGSTRate     = 0.05
)

// ErrUnknownItem means a cart line references an item that is not on the
// selected restaurant's menu. The machine never produces such a cart, so
// hitting this is a caller bug, not a user-facing condition.
var ErrUnknownItem = errors.New("item not on the selected restaurant's menu")

// Fees carries the flat fee and tax constants. Zero values fall back to
// the defaults.
type Fees struct {
	Delivery float64
	Platform float64
	GSTRate  float64
}

func (f Fees) withDefaults() Fees {
	if f.Delivery == 0 {
		f.Delivery = DefaultDeliveryFee
	}
	if f.Platform == 0 {
		f.Platform = DefaultPlatformFee
	}
	if f.GSTRate == 0 {
		f.GSTRate = DefaultGSTRate
	}
	return f
}

func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeBreakdown derives the full price breakdown from a cart. An
// empty cart yields all zeros; no fees are charged on it. GST and total
// are each rounded to 2 decimal places independently.
func ComputeBreakdown(cart []models.CartLine, r models.Restaurant, fees Fees) (models.PriceBreakdown, error) {
	fees = fees.withDefaults()

	var subtotal float64
	for _, line := range cart {
		item, ok := r.FindItem(line.ItemID)
		if !ok {
			return models.PriceBreakdown{}, fmt.Errorf("compute breakdown: item %d: %w", line.ItemID, ErrUnknownItem)
		}
		subtotal += item.Price * float64(line.Quantity)
	}

	if subtotal == 0 {
		return models.PriceBreakdown{}, nil
	}

	gst := Round2(subtotal * fees.GSTRate)
	return models.PriceBreakdown{
		Subtotal:    subtotal,
		DeliveryFee: fees.Delivery,
		PlatformFee: fees.Platform,
		GST:         gst,
		Total:       Round2(subtotal + fees.Delivery + fees.Platform + gst),
	}, nil
}
