package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/service"
)

type RepairHandler struct {
	repairs service.RepairService
}

func NewRepairHandler(repairs service.RepairService) *RepairHandler {
	return &RepairHandler{repairs: repairs}
}

func (h *RepairHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/repairs", h.register).Methods(http.MethodPost)
	r.HandleFunc("/repairs", h.list).Methods(http.MethodGet)
	r.HandleFunc("/repairs/{id}/finalize", h.finalize).Methods(http.MethodPost)
}

func (h *RepairHandler) RegisterManagerRoutes(r *mux.Router) {
	r.HandleFunc("/repairs/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *RepairHandler) register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EquipmentType     string     `json:"equipment_type"`
		EquipmentID       *int32     `json:"equipment_id"`
		EquipmentName     string     `json:"equipment_name"`
		Brand             string     `json:"brand"`
		Model             string     `json:"model"`
		SerialNumber      string     `json:"serial_number"`
		Description       string     `json:"description"`
		EstimatedExitDate *time.Time `json:"estimated_exit_date"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	rep, err := h.repairs.RegisterRepair(r.Context(), service.RegisterRepairInput{
		EquipmentType:     domain.EquipmentType(in.EquipmentType),
		EquipmentID:       in.EquipmentID,
		EquipmentName:     in.EquipmentName,
		Brand:             in.Brand,
		Model:             in.Model,
		SerialNumber:      in.SerialNumber,
		Description:       in.Description,
		EstimatedExitDate: in.EstimatedExitDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

func (h *RepairHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		repairs []domain.Repair
		err     error
	)
	if r.URL.Query().Get("open") == "true" {
		repairs, err = h.repairs.ListOpenRepairs(r.Context())
	} else {
		repairs, err = h.repairs.ListRepairs(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, repairs)
}

func (h *RepairHandler) finalize(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rep, err := h.repairs.FinalizeRepair(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *RepairHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.repairs.DeleteRepair(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
