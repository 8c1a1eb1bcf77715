package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	catalogdomain "github.com/printops/inkwell/internal/catalog/domain"
	"github.com/printops/inkwell/internal/inventory/domain"
	"github.com/printops/inkwell/internal/inventory/usecase/command"
	"github.com/printops/inkwell/internal/inventory/usecase/query"
	"github.com/printops/inkwell/internal/middleware"
	"github.com/printops/inkwell/pkg/logger"
)

// InventoryHandler handles HTTP requests for inventory lots and the
// ink-in-use ledger
type InventoryHandler struct {
	createLotHandler *command.CreateLotHandler
	updateLotHandler *command.UpdateLotHandler
	deleteLotHandler *command.DeleteLotHandler

	listLotsHandler  *query.ListLotsHandler
	getLotHandler    *query.GetLotHandler
	listInUseHandler *query.ListInUseHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(lots domain.LotRepository, ledger domain.LedgerRepository, models catalogdomain.InkModelRepository) *InventoryHandler {
	return &InventoryHandler{
		createLotHandler: command.NewCreateLotHandler(lots, models),
		updateLotHandler: command.NewUpdateLotHandler(lots, models),
		deleteLotHandler: command.NewDeleteLotHandler(lots),
		listLotsHandler:  query.NewListLotsHandler(lots),
		getLotHandler:    query.NewGetLotHandler(lots),
		listInUseHandler: query.NewListInUseHandler(ledger),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListLots handles GET /api/inventory
func (h *InventoryHandler) ListLots(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	lots, err := h.listLotsHandler.Handle(r.Context(), query.ListLotsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list inventory lots")
		respondError(w, http.StatusInternalServerError, "Failed to list inventory lots")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: lots})
}

// GetLot handles GET /api/inventory/{id}
func (h *InventoryHandler) GetLot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid lot ID")
		return
	}

	lot, err := h.getLotHandler.Handle(r.Context(), query.GetLotQuery{ID: id})
	if err != nil {
		respondError(w, http.StatusNotFound, "Inventory lot not found")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: lot})
}

// CreateLot handles POST /api/inventory
func (h *InventoryHandler) CreateLot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InkModelID    uint    `json:"ink_model_id"`
		Color         string  `json:"color"`
		VolumePerUnit float64 `json:"volume_per_unit"`
		Quantity      int     `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lot, err := h.createLotHandler.Handle(r.Context(), command.CreateLotCommand{
		InkModelID:    req.InkModelID,
		Color:         req.Color,
		VolumePerUnit: req.VolumePerUnit,
		Quantity:      req.Quantity,
	})
	if err != nil {
		if errors.Is(err, catalogdomain.ErrInkModelNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, Response{Success: true, Data: lot})
}

// UpdateLot handles PUT /api/inventory/{id}
func (h *InventoryHandler) UpdateLot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid lot ID")
		return
	}

	var req struct {
		Color         string  `json:"color"`
		VolumePerUnit float64 `json:"volume_per_unit"`
		Quantity      *int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lot, err := h.updateLotHandler.Handle(r.Context(), command.UpdateLotCommand{
		ID:            id,
		Color:         req.Color,
		VolumePerUnit: req.VolumePerUnit,
		Quantity:      req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLotNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrQuantityBounds):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: lot})
}

// DeleteLot handles DELETE /api/inventory/{id}
func (h *InventoryHandler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid lot ID")
		return
	}

	if err := h.deleteLotHandler.Handle(r.Context(), command.DeleteLotCommand{ID: id}); err != nil {
		if errors.Is(err, domain.ErrLotNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Inventory lot deleted"})
}

// ListInUse handles GET /api/inkinuse
func (h *InventoryHandler) ListInUse(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	inkModelID, _ := strconv.ParseUint(r.URL.Query().Get("inkId"), 10, 32)

	records, err := h.listInUseHandler.Handle(r.Context(), query.ListInUseQuery{
		InkModelID: uint(inkModelID),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list ink-in-use records")
		respondError(w, http.StatusInternalServerError, "Failed to list ink-in-use records")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	router.HandleFunc("/api/inventory", authn.Authenticate(h.ListLots)).Methods("GET")
	router.HandleFunc("/api/inventory", authn.RequireAdmin(h.CreateLot)).Methods("POST")
	router.HandleFunc("/api/inventory/{id}", authn.Authenticate(h.GetLot)).Methods("GET")
	router.HandleFunc("/api/inventory/{id}", authn.RequireAdmin(h.UpdateLot)).Methods("PUT")
	router.HandleFunc("/api/inventory/{id}", authn.RequireAdmin(h.DeleteLot)).Methods("DELETE")

	router.HandleFunc("/api/inkinuse", authn.Authenticate(h.ListInUse)).Methods("GET")
}

func pathID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}
