package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"swiftdine/models"
	"swiftdine/services"

	"github.com/gorilla/mux"
)

// Handler is the presentation shell over the order state machine. It
// translates HTTP requests into dispatches and session snapshots into
// JSON; it holds no ordering state of its own.
type Handler struct {
	Catalog   *services.Catalog
	Machine   *services.Machine
	Lifecycle *services.Lifecycle
	Locator   *services.AddressLocator
	Processor *services.Processor
}

func NewHandler(catalog *services.Catalog, machine *services.Machine, lifecycle *services.Lifecycle, locator *services.AddressLocator, processor *services.Processor) *Handler {
	return &Handler{
		Catalog:   catalog,
		Machine:   machine,
		Lifecycle: lifecycle,
		Locator:   locator,
		Processor: processor,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")

	r.HandleFunc("/api/state", h.getState).Methods("GET")
	r.HandleFunc("/api/payment-options", h.getPaymentOptions).Methods("GET")

	r.HandleFunc("/api/session/stage", h.setStage).Methods("POST")
	r.HandleFunc("/api/session/restaurant", h.selectRestaurant).Methods("POST")
	r.HandleFunc("/api/session/items", h.addItem).Methods("POST")
	r.HandleFunc("/api/session/items/{id}", h.updateQuantity).Methods("PUT")
	r.HandleFunc("/api/session/address", h.updateAddress).Methods("POST")
	r.HandleFunc("/api/session/locate", h.locate).Methods("POST")
	r.HandleFunc("/api/session/order", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/session/reset", h.resetSession).Methods("POST")
}

type stateResponse struct {
	Session          models.Session     `json:"session"`
	RenderMode       models.RenderMode  `json:"render_mode"`
	RedirectStage    models.Stage       `json:"redirect_stage"`
	CartCount        int                `json:"cart_count"`
	CountdownSeconds int                `json:"countdown_seconds"`
	Restaurant       *models.Restaurant `json:"restaurant,omitempty"`
}

func (h *Handler) stateFor(s models.Session) stateResponse {
	resp := stateResponse{
		Session:          s,
		RenderMode:       services.RenderModeFor(s.Stage),
		RedirectStage:    services.RedirectStage(s),
		CartCount:        services.CartCount(s),
		CountdownSeconds: h.Lifecycle.Remaining(),
	}
	if s.HasRestaurant() {
		if r, ok := h.Catalog.Get(s.RestaurantID); ok {
			resp.Restaurant = &r
		}
	}
	return resp
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "swiftdine",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	t := models.DietaryType(r.URL.Query().Get("type"))
	if t != "" && t != models.DietaryVeg && t != models.DietaryNonVeg {
		http.Error(w, "unknown dietary type", http.StatusBadRequest)
		return
	}
	restaurants := h.Catalog.FilterByType(t)
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}
	rest, ok := h.Catalog.Get(id)
	if !ok {
		http.Error(w, "restaurant not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stateFor(h.Machine.Snapshot()))
}

func (h *Handler) getPaymentOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"methods":  []string{services.PaymentUPI, services.PaymentCard, services.PaymentWallet, services.PaymentCOD},
		"upi_apps": services.UPIApps,
		"wallets":  services.Wallets,
	})
}

func (h *Handler) setStage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stage models.Stage `json:"stage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, services.Action{Type: services.ActionSetStage, Stage: req.Stage})
}

func (h *Handler) selectRestaurant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RestaurantID int64 `json:"restaurant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, services.Action{Type: services.ActionSelectRestaurant, RestaurantID: req.RestaurantID})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID int64 `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, services.Action{Type: services.ActionAddItem, ItemID: req.ItemID})
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, services.Action{Type: services.ActionUpdateQuantity, ItemID: id, Quantity: req.Quantity})
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dispatch(w, services.Action{Type: services.ActionUpdateAddress, Address: req.Address})
}

func (h *Handler) locate(w http.ResponseWriter, r *http.Request) {
	addr, err := h.Locator.Locate(r.Context())
	if err != nil {
		// Advisory: the session is unchanged, the user can type the
		// address manually.
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"address": addr,
		"state":   h.stateFor(h.Machine.Snapshot()),
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Method == "" {
		req.Method = services.PaymentUPI
	}
	res, err := h.Processor.Confirm(r.Context(), req.Method)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			http.Error(w, err.Error(), http.StatusRequestTimeout)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status := http.StatusOK
	if !res.Placed {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (h *Handler) resetSession(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, services.Action{Type: services.ActionResetApp})
}

func (h *Handler) dispatch(w http.ResponseWriter, a services.Action) {
	s, err := h.Machine.Dispatch(a)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStage) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Unresolvable references mean the caller is out of sync with
		// the session.
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, h.stateFor(s))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
