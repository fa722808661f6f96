package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
	loc     *time.Location
}

func NewRentalHandler(rentals service.RentalService, loc *time.Location) *RentalHandler {
	return &RentalHandler{rentals: rentals, loc: loc}
}

func (h *RentalHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/rentals", h.start).Methods(http.MethodPost)
	r.HandleFunc("/rentals", h.listActive).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id}/estimate", h.estimate).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id}/finalize", h.finalize).Methods(http.MethodPost)
}

func (h *RentalHandler) RegisterManagerRoutes(r *mux.Router) {
	r.HandleFunc("/reports/earnings", h.earnings).Methods(http.MethodGet)
}

func pathID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError("invalid id in path")
	}
	return int32(id), nil
}

func (h *RentalHandler) start(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ConsoleID        int32  `json:"console_id"`
		ExtraControllers int32  `json:"extra_controllers"`
		CubicleLabel     string `json:"cubicle_label"`
		Notes            string `json:"notes"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	claims := ClaimsFrom(r.Context())
	rental, err := h.rentals.StartRental(r.Context(), claims.UserID, in.ConsoleID, in.ExtraControllers, in.CubicleLabel, in.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) listActive(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentals.ListActiveRentals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) estimate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	charge, err := h.rentals.EstimateCharge(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charge)
}

func (h *RentalHandler) finalize(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rental, charge, err := h.rentals.FinalizeRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rental": rental,
		"charge": charge,
	})
}

// earnings expects from/to as YYYY-MM-DD; to is inclusive. Day boundaries are
// taken in the shop timezone so a local business day maps to one bucket.
func (h *RentalHandler) earnings(w http.ResponseWriter, r *http.Request) {
	from, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("from"), h.loc)
	if err != nil {
		writeError(w, domain.ValidationError("from must be YYYY-MM-DD"))
		return
	}
	to, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("to"), h.loc)
	if err != nil {
		writeError(w, domain.ValidationError("to must be YYYY-MM-DD"))
		return
	}

	report, err := h.rentals.EarningsReport(r.Context(), from, to.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
