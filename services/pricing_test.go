package services

import (
	"errors"
	"testing"

	"swiftdine/models"
)

func TestComputeBreakdownEmptyCart(t *testing.T) {
	r, _ := DefaultCatalog().Get(1)
	got, err := ComputeBreakdown(nil, r, Fees{})
	if err != nil {
		t.Fatalf("ComputeBreakdown(empty) error: %v", err)
	}
	if got != (models.PriceBreakdown{}) {
		t.Errorf("empty cart breakdown = %+v, want all zeros", got)
	}
}

func TestComputeBreakdownScenarios(t *testing.T) {
	catalog := DefaultCatalog()
	tests := []struct {
		name         string
		restaurantID int64
		cart         []models.CartLine
		want         models.PriceBreakdown
	}{
		{
			name:         "single idli",
			restaurantID: 1,
			cart:         []models.CartLine{{ItemID: 101, Quantity: 1}},
			want: models.PriceBreakdown{
				Subtotal: 120, DeliveryFee: 30, PlatformFee: 5, GST: 6.00, Total: 161.00,
			},
		},
		{
			name:         "biryani plus two gobi",
			restaurantID: 2,
			cart:         []models.CartLine{{ItemID: 201, Quantity: 1}, {ItemID: 203, Quantity: 2}},
			want: models.PriceBreakdown{
				Subtotal: 580, DeliveryFee: 30, PlatformFee: 5, GST: 29.00, Total: 644.00,
			},
		},
		{
			name:         "three naan",
			restaurantID: 3,
			cart:         []models.CartLine{{ItemID: 303, Quantity: 3}},
			want: models.PriceBreakdown{
				Subtotal: 180, DeliveryFee: 30, PlatformFee: 5, GST: 9.00, Total: 224.00,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := catalog.Get(tt.restaurantID)
			if !ok {
				t.Fatalf("restaurant %d missing from catalog", tt.restaurantID)
			}
			got, err := ComputeBreakdown(tt.cart, r, Fees{})
			if err != nil {
				t.Fatalf("ComputeBreakdown error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeBreakdown = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeBreakdownFlatFeesRegardlessOfCartSize(t *testing.T) {
	r, _ := DefaultCatalog().Get(1)
	carts := [][]models.CartLine{
		{{ItemID: 101, Quantity: 1}},
		{{ItemID: 101, Quantity: 7}},
		{{ItemID: 101, Quantity: 2}, {ItemID: 102, Quantity: 3}, {ItemID: 103, Quantity: 4}},
	}
	for _, cart := range carts {
		got, err := ComputeBreakdown(cart, r, Fees{})
		if err != nil {
			t.Fatalf("ComputeBreakdown error: %v", err)
		}
		if got.DeliveryFee != DefaultDeliveryFee || got.PlatformFee != DefaultPlatformFee {
			t.Errorf("fees = %v/%v, want %v/%v", got.DeliveryFee, got.PlatformFee, DefaultDeliveryFee, DefaultPlatformFee)
		}
		wantTotal := Round2(got.Subtotal + got.DeliveryFee + got.PlatformFee + Round2(got.Subtotal*DefaultGSTRate))
		if got.Total != wantTotal {
			t.Errorf("total = %v, want %v", got.Total, wantTotal)
		}
	}
}

func TestComputeBreakdownUnknownItem(t *testing.T) {
	r, _ := DefaultCatalog().Get(1)
	_, err := ComputeBreakdown([]models.CartLine{{ItemID: 999, Quantity: 1}}, r, Fees{})
	if !errors.Is(err, ErrUnknownItem) {
		t.Errorf("ComputeBreakdown error = %v, want ErrUnknownItem", err)
	}
}

func TestComputeBreakdownCustomFees(t *testing.T) {
	r, _ := DefaultCatalog().Get(1)
	got, err := ComputeBreakdown(
		[]models.CartLine{{ItemID: 103, Quantity: 1}}, // 100
		r,
		Fees{Delivery: 20, Platform: 3, GSTRate: 0.18},
	)
	if err != nil {
		t.Fatalf("ComputeBreakdown error: %v", err)
	}
	want := models.PriceBreakdown{Subtotal: 100, DeliveryFee: 20, PlatformFee: 3, GST: 18.00, Total: 141.00}
	if got != want {
		t.Errorf("ComputeBreakdown = %+v, want %+v", got, want)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{6, 6},
		{6.126, 6.13},
		{6.123, 6.12},
		{28.999999999999996, 29},
		{644.0000000000001, 644},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
