package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeProvider struct {
	lat, lon float64
	err      error
}

func (f fakeProvider) CurrentPosition(ctx context.Context) (float64, float64, error) {
	return f.lat, f.lon, f.err
}

// blockingProvider never answers; it only honors cancellation.
type blockingProvider struct{}

func (blockingProvider) CurrentPosition(ctx context.Context) (float64, float64, error) {
	<-ctx.Done()
	return 0, 0, ctx.Err()
}

func TestLocateUpdatesAddress(t *testing.T) {
	m := newTestMachine()
	l := NewAddressLocator(fakeProvider{lat: 13.0418, lon: 80.2341}, time.Second, m)

	addr, err := l.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	want := "[GPS Location] Lat: 13.0418, Lon: 80.2341 - Near Chennai Area"
	if addr != want {
		t.Errorf("address = %q, want %q", addr, want)
	}
	if got := m.Snapshot().DeliveryAddress; got != want {
		t.Errorf("session address = %q, want %q", got, want)
	}
}

func TestLocateErrorLeavesStateUnchanged(t *testing.T) {
	m := newTestMachine()
	provErr := errors.New("position unavailable")
	l := NewAddressLocator(fakeProvider{err: provErr}, time.Second, m)

	before := m.Snapshot()
	_, err := l.Locate(context.Background())
	if !errors.Is(err, provErr) {
		t.Fatalf("error = %v, want wrapped provider error", err)
	}
	if got := m.Snapshot().DeliveryAddress; got != before.DeliveryAddress {
		t.Errorf("address changed on failed locate: %q", got)
	}
}

func TestLocateTimeout(t *testing.T) {
	m := newTestMachine()
	l := NewAddressLocator(blockingProvider{}, 20*time.Millisecond, m)

	before := m.Snapshot()
	start := time.Now()
	_, err := l.Locate(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Locate took %v, timeout not applied", elapsed)
	}
	if got := m.Snapshot().DeliveryAddress; got != before.DeliveryAddress {
		t.Errorf("address changed on timed-out locate: %q", got)
	}
}

func TestFormatGPSAddress(t *testing.T) {
	got := FormatGPSAddress(12.97161234, 77.59456789)
	want := "[GPS Location] Lat: 12.9716, Lon: 77.5946 - Near Chennai Area"
	if got != want {
		t.Errorf("FormatGPSAddress = %q, want %q", got, want)
	}
}
