package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"gamehub-backend/internal/service"
)

type PricingHandler struct {
	pricing service.PricingService
}

func NewPricingHandler(pricing service.PricingService) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

func (h *PricingHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/pricing/active", h.getActive).Methods(http.MethodGet)
}

func (h *PricingHandler) RegisterManagerRoutes(r *mux.Router) {
	r.HandleFunc("/pricing", h.set).Methods(http.MethodPut)
	r.HandleFunc("/pricing/history", h.list).Methods(http.MethodGet)
}

func (h *PricingHandler) getActive(w http.ResponseWriter, r *http.Request) {
	ps, err := h.pricing.GetActiveSchedule(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *PricingHandler) set(w http.ResponseWriter, r *http.Request) {
	var in struct {
		HourlyRate          decimal.Decimal `json:"hourly_rate"`
		ExtraControllerRate decimal.Decimal `json:"extra_controller_rate"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	claims := ClaimsFrom(r.Context())
	ps, err := h.pricing.SetPriceSchedule(r.Context(), claims.UserID, in.HourlyRate, in.ExtraControllerRate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *PricingHandler) list(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.pricing.ListSchedules(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}
