package services

import (
	"context"
	"fmt"
	"time"
)

// PositionProvider abstracts however coordinates are actually acquired
// (browser API, GPS hardware, a stub). The core only needs the result.
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (lat, lon float64, err error)
}

// AddressLocator turns a position lookup into an UPDATE_ADDRESS
// dispatch. Lookups are bounded by a timeout; on error or timeout the
// session is left untouched and the error is advisory, the user can
// always type the address manually.
type AddressLocator struct {
	provider PositionProvider
	timeout  time.Duration
	machine  *Machine
}

func NewAddressLocator(provider PositionProvider, timeout time.Duration, machine *Machine) *AddressLocator {
	return &AddressLocator{provider: provider, timeout: timeout, machine: machine}
}

// Locate fetches the current position and applies it as the delivery
// address. Returns the formatted address on success.
func (l *AddressLocator) Locate(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	lat, lon, err := l.provider.CurrentPosition(ctx)
	if err != nil {
		return "", fmt.Errorf("locate: %w", err)
	}

	addr := FormatGPSAddress(lat, lon)
	if _, err := l.machine.Dispatch(Action{Type: ActionUpdateAddress, Address: addr}); err != nil {
		return "", fmt.Errorf("locate: %w", err)
	}
	return addr, nil
}

func FormatGPSAddress(lat, lon float64) string {
	return fmt.Sprintf("[GPS Location] Lat: %.4f, Lon: %.4f - Near Chennai Area", lat, lon)
}
