package services

import (
	"errors"
	"fmt"
	"sync"

	"swiftdine/models"
)

// Action types accepted by the machine. Anything else is tolerated as a
// no-op.
const (
	ActionSetStage         = "SET_STAGE"
	ActionSelectRestaurant = "SELECT_RESTAURANT"
	ActionAddItem          = "ADD_ITEM"
	ActionUpdateQuantity   = "UPDATE_QUANTITY"
	ActionUpdateAddress    = "UPDATE_ADDRESS"
	ActionPlaceOrder       = "PLACE_ORDER"
	ActionResetApp         = "RESET_APP"
)

// Action is one dispatched command. Only the payload fields relevant to
// the Type are read.
type Action struct {
	Type         string
	Stage        models.Stage
	RestaurantID int64
	ItemID       int64
	Quantity     int
	Address      string
}

var (
	// ErrNoRestaurant means ADD_ITEM was dispatched before any
	// SELECT_RESTAURANT. That is a caller bug, not a recoverable state.
	ErrNoRestaurant = errors.New("no restaurant selected")

	// ErrUnknownRestaurant means SELECT_RESTAURANT referenced an id the
	// catalog cannot resolve.
	ErrUnknownRestaurant = errors.New("restaurant not in catalog")

	// ErrInvalidStage means SET_STAGE carried a value outside the five
	// known stages, i.e. the action shape itself was malformed.
	ErrInvalidStage = errors.New("invalid stage")
)

const DefaultAddress = "Plot No 1, Main Street, T. Nagar, Chennai - 600017, Tamil Nadu, India."

// Machine is the single mutation entry point for a session. Dispatches
// are sequenced through one mutex; each transition runs to completion
// before the next is applied. Observers receive immutable snapshots.
type Machine struct {
	catalog *Catalog
	fees    Fees

	mu        sync.Mutex
	state     models.Session
	listeners []func(models.Session)
}

func NewMachine(catalog *Catalog, fees Fees) *Machine {
	return &Machine{
		catalog: catalog,
		fees:    fees,
		state:   initialSession(),
	}
}

func initialSession() models.Session {
	return models.Session{
		Cart:            []models.CartLine{},
		DeliveryAddress: DefaultAddress,
		Stage:           models.StageHome,
	}
}

// Snapshot returns a read-only copy of the current session.
func (m *Machine) Snapshot() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// OnChange registers an observer invoked after every successful
// dispatch with a snapshot of the new state. Registration is expected
// at wiring time, before dispatches start.
func (m *Machine) OnChange(fn func(models.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Dispatch applies one action and returns the resulting session
// snapshot. Precondition failures (PLACE_ORDER rejected by checkout
// validation, UPDATE_QUANTITY for an absent line, unknown action types)
// silently leave the state unchanged; invariant violations return an
// error and leave the state unchanged.
func (m *Machine) Dispatch(a Action) (models.Session, error) {
	m.mu.Lock()
	next, err := m.apply(m.state, a)
	if err != nil {
		snap := m.state.Clone()
		m.mu.Unlock()
		return snap, err
	}
	m.state = next
	snap := m.state.Clone()
	listeners := m.listeners
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap.Clone())
	}
	return snap, nil
}

func (m *Machine) apply(s models.Session, a Action) (models.Session, error) {
	switch a.Type {
	case ActionSetStage:
		if !models.ValidStage(a.Stage) {
			return s, fmt.Errorf("set stage %q: %w", a.Stage, ErrInvalidStage)
		}
		next := s.Clone()
		next.Stage = a.Stage
		return next, nil

	case ActionSelectRestaurant:
		r, ok := m.catalog.Get(a.RestaurantID)
		if !ok {
			return s, fmt.Errorf("select restaurant %d: %w", a.RestaurantID, ErrUnknownRestaurant)
		}
		next := s.Clone()
		next.RestaurantID = r.ID
		next.Cart = []models.CartLine{}
		next.Stage = models.StageMenu
		next.Prices = models.PriceBreakdown{}
		return next, nil

	case ActionAddItem:
		if !s.HasRestaurant() {
			return s, fmt.Errorf("add item %d: %w", a.ItemID, ErrNoRestaurant)
		}
		r, ok := m.catalog.Get(s.RestaurantID)
		if !ok {
			return s, fmt.Errorf("add item %d: restaurant %d: %w", a.ItemID, s.RestaurantID, ErrUnknownRestaurant)
		}
		if _, ok := r.FindItem(a.ItemID); !ok {
			return s, fmt.Errorf("add item %d: %w", a.ItemID, ErrUnknownItem)
		}
		next := s.Clone()
		found := false
		for i := range next.Cart {
			if next.Cart[i].ItemID == a.ItemID {
				next.Cart[i].Quantity++
				found = true
				break
			}
		}
		if !found {
			next.Cart = append(next.Cart, models.CartLine{ItemID: a.ItemID, Quantity: 1})
		}
		return m.reprice(next, r)

	case ActionUpdateQuantity:
		idx := -1
		for i := range s.Cart {
			if s.Cart[i].ItemID == a.ItemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s, nil // no line for this item
		}
		next := s.Clone()
		if a.Quantity > 0 {
			next.Cart[idx].Quantity = a.Quantity
		} else {
			next.Cart = append(next.Cart[:idx], next.Cart[idx+1:]...)
		}
		r, ok := m.catalog.Get(next.RestaurantID)
		if !ok {
			return s, fmt.Errorf("update quantity for item %d: restaurant %d: %w", a.ItemID, next.RestaurantID, ErrUnknownRestaurant)
		}
		return m.reprice(next, r)

	case ActionUpdateAddress:
		next := s.Clone()
		next.DeliveryAddress = a.Address
		return next, nil

	case ActionPlaceOrder:
		if res := ValidateCheckout(s); !res.OK {
			return s, nil // rejection is surfaced by the caller, not here
		}
		next := s.Clone()
		next.Stage = models.StageSuccess
		return next, nil

	case ActionResetApp:
		return initialSession(), nil

	default:
		return s, nil
	}
}

func (m *Machine) reprice(s models.Session, r models.Restaurant) (models.Session, error) {
	prices, err := ComputeBreakdown(s.Cart, r, m.fees)
	if err != nil {
		return s, err
	}
	s.Prices = prices
	return s, nil
}

// CartCount is the total quantity across all cart lines (the header
// badge number).
func CartCount(s models.Session) int {
	n := 0
	for _, line := range s.Cart {
		n += line.Quantity
	}
	return n
}

// RenderModeFor maps a stage to the screen a consumer should draw. Menu
// and Cart share the restaurant-scoped layout and differ only in which
// list is shown.
func RenderModeFor(stage models.Stage) models.RenderMode {
	switch stage {
	case models.StageMenu:
		return models.RenderMenuList
	case models.StageCart:
		return models.RenderCartList
	case models.StageCheckout:
		return models.RenderCheckout
	case models.StageSuccess:
		return models.RenderSuccess
	default:
		return models.RenderHome
	}
}

// RedirectStage applies the consumer-side rules for views that are
// meaningless in the current session: restaurant-scoped views without a
// selected restaurant fall back to home, and cart/checkout views with
// an empty cart fall back to the menu. The machine itself never blocks
// SET_STAGE.
func RedirectStage(s models.Session) models.Stage {
	switch s.Stage {
	case models.StageMenu, models.StageCart, models.StageCheckout:
		if !s.HasRestaurant() {
			return models.StageHome
		}
		if s.Stage != models.StageMenu && len(s.Cart) == 0 {
			return models.StageMenu
		}
	}
	return s.Stage
}
