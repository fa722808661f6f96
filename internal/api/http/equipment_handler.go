package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/service"
)

type EquipmentHandler struct {
	equipment service.EquipmentService
}

func NewEquipmentHandler(equipment service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

func (h *EquipmentHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/consoles", h.listConsoles).Methods(http.MethodGet)
	r.HandleFunc("/consoles/{id}", h.getConsole).Methods(http.MethodGet)
	r.HandleFunc("/consoles/{id}/controllers", h.listConsoleControllers).Methods(http.MethodGet)
	r.HandleFunc("/controllers", h.listControllers).Methods(http.MethodGet)
	r.HandleFunc("/inventory/summary", h.inventorySummary).Methods(http.MethodGet)
}

func (h *EquipmentHandler) RegisterManagerRoutes(r *mux.Router) {
	r.HandleFunc("/consoles", h.createConsole).Methods(http.MethodPost)
	r.HandleFunc("/consoles/{id}", h.updateConsole).Methods(http.MethodPut)
	r.HandleFunc("/consoles/{id}", h.deleteConsole).Methods(http.MethodDelete)
	r.HandleFunc("/controllers", h.createController).Methods(http.MethodPost)
	r.HandleFunc("/controllers/{id}", h.updateController).Methods(http.MethodPut)
	r.HandleFunc("/controllers/{id}", h.deleteController).Methods(http.MethodDelete)
}

func (h *EquipmentHandler) createConsole(w http.ResponseWriter, r *http.Request) {
	var c domain.Console
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, err)
		return
	}
	if err := h.equipment.CreateConsole(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *EquipmentHandler) getConsole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := h.equipment.GetConsole(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *EquipmentHandler) updateConsole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var c domain.Console
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, err)
		return
	}
	c.ID = id
	if err := h.equipment.UpdateConsole(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *EquipmentHandler) deleteConsole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.equipment.DeleteConsole(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EquipmentHandler) listConsoles(w http.ResponseWriter, r *http.Request) {
	status := domain.ConsoleStatus(r.URL.Query().Get("status"))
	consoles, err := h.equipment.ListConsoles(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, consoles)
}

func (h *EquipmentHandler) listConsoleControllers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	controllers, err := h.equipment.ListConsoleControllers(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, controllers)
}

func (h *EquipmentHandler) createController(w http.ResponseWriter, r *http.Request) {
	var c domain.Controller
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, err)
		return
	}
	if err := h.equipment.CreateController(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *EquipmentHandler) updateController(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var c domain.Controller
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, err)
		return
	}
	c.ID = id
	if err := h.equipment.UpdateController(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *EquipmentHandler) deleteController(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.equipment.DeleteController(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EquipmentHandler) listControllers(w http.ResponseWriter, r *http.Request) {
	status := domain.ControllerStatus(r.URL.Query().Get("status"))
	controllers, err := h.equipment.ListControllers(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, controllers)
}

func (h *EquipmentHandler) inventorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.equipment.InventorySummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
