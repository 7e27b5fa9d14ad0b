package models

type Stage string

const (
	StageHome     Stage = "home"
	StageMenu     Stage = "menu"
	StageCart     Stage = "cart"
	StageCheckout Stage = "checkout"
	StageSuccess  Stage = "success"
)

func ValidStage(s Stage) bool {
	switch s {
	case StageHome, StageMenu, StageCart, StageCheckout, StageSuccess:
		return true
	}
	return false
}

// RenderMode is what a read-side consumer should actually draw. Menu and
// Cart are both restaurant-scoped stages that differ only in which list
// is shown, so the fork lives here rather than in the stage enum.
type RenderMode string

const (
	RenderHome     RenderMode = "home"
	RenderMenuList RenderMode = "menu_list"
	RenderCartList RenderMode = "cart_list"
	RenderCheckout RenderMode = "checkout"
	RenderSuccess  RenderMode = "success"
)

type CartLine struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// PriceBreakdown is derived from the cart on every change; it is never
// mutated independently.
type PriceBreakdown struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	PlatformFee float64 `json:"platform_fee"`
	GST         float64 `json:"gst"`
	Total       float64 `json:"total"`
}

// Session is the aggregate state of one ordering flow. RestaurantID 0
// means no restaurant is selected.
type Session struct {
	Cart            []CartLine     `json:"cart"`
	DeliveryAddress string         `json:"delivery_address"`
	Stage           Stage          `json:"stage"`
	RestaurantID    int64          `json:"restaurant_id"`
	Prices          PriceBreakdown `json:"price_breakdown"`
}

func (s Session) HasRestaurant() bool {
	return s.RestaurantID != 0
}

// Clone returns a copy whose cart does not share backing storage with
// the original.
func (s Session) Clone() Session {
	out := s
	out.Cart = make([]CartLine, len(s.Cart))
	copy(out.Cart, s.Cart)
	return out
}
