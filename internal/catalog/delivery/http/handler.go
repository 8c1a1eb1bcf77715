package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/printops/inkwell/internal/catalog/domain"
	"github.com/printops/inkwell/internal/catalog/usecase/command"
	"github.com/printops/inkwell/internal/catalog/usecase/query"
	"github.com/printops/inkwell/internal/middleware"
	"github.com/printops/inkwell/pkg/logger"
)

// CatalogHandler handles HTTP requests for ink and printer models
type CatalogHandler struct {
	createInkHandler     *command.CreateInkModelHandler
	updateInkHandler     *command.UpdateInkModelHandler
	deleteInkHandler     *command.DeleteInkModelHandler
	createPrinterHandler *command.CreatePrinterModelHandler
	updatePrinterHandler *command.UpdatePrinterModelHandler
	deletePrinterHandler *command.DeletePrinterModelHandler

	getInkHandler      *query.GetInkModelHandler
	listInkHandler     *query.ListInkModelsHandler
	getPrinterHandler  *query.GetPrinterModelHandler
	listPrinterHandler *query.ListPrinterModelsHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(inks domain.InkModelRepository, printers domain.PrinterModelRepository) *CatalogHandler {
	return &CatalogHandler{
		createInkHandler:     command.NewCreateInkModelHandler(inks),
		updateInkHandler:     command.NewUpdateInkModelHandler(inks),
		deleteInkHandler:     command.NewDeleteInkModelHandler(inks),
		createPrinterHandler: command.NewCreatePrinterModelHandler(printers, inks),
		updatePrinterHandler: command.NewUpdatePrinterModelHandler(printers, inks),
		deletePrinterHandler: command.NewDeletePrinterModelHandler(printers),
		getInkHandler:        query.NewGetInkModelHandler(inks),
		listInkHandler:       query.NewListInkModelsHandler(inks),
		getPrinterHandler:    query.NewGetPrinterModelHandler(printers),
		listPrinterHandler:   query.NewListPrinterModelsHandler(printers),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListInkModels handles GET /api/inks/models
func (h *CatalogHandler) ListInkModels(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	models, err := h.listInkHandler.Handle(query.ListInkModelsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list ink models")
		respondError(w, http.StatusInternalServerError, "Failed to list ink models")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: models})
}

// GetInkModel handles GET /api/inks/models/{id}
func (h *CatalogHandler) GetInkModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ink model ID")
		return
	}

	model, err := h.getInkHandler.Handle(query.GetInkModelQuery{ID: id})
	if err != nil {
		respondError(w, http.StatusNotFound, "Ink model not found")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: model})
}

// CreateInkModel handles POST /api/inks/models
func (h *CatalogHandler) CreateInkModel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string   `json:"name"`
		Colors []string `json:"colors"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	model, err := h.createInkHandler.Handle(command.CreateInkModelCommand{Name: req.Name, Colors: req.Colors})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, Response{Success: true, Data: model})
}

// UpdateInkModel handles PUT /api/inks/models/{id}
func (h *CatalogHandler) UpdateInkModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ink model ID")
		return
	}

	var req struct {
		Name   string   `json:"name"`
		Colors []string `json:"colors"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	model, err := h.updateInkHandler.Handle(command.UpdateInkModelCommand{ID: id, Name: req.Name, Colors: req.Colors})
	if err != nil {
		if errors.Is(err, domain.ErrInkModelNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: model})
}

// DeleteInkModel handles DELETE /api/inks/models/{id}
func (h *CatalogHandler) DeleteInkModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ink model ID")
		return
	}

	if err := h.deleteInkHandler.Handle(command.DeleteInkModelCommand{ID: id}); err != nil {
		switch {
		case errors.Is(err, domain.ErrInkModelNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrInkModelInUse):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Ink model deleted"})
}

// ListPrinterModels handles GET /api/printers
func (h *CatalogHandler) ListPrinterModels(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	models, err := h.listPrinterHandler.Handle(query.ListPrinterModelsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list printer models")
		respondError(w, http.StatusInternalServerError, "Failed to list printer models")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: models})
}

// GetPrinterModel handles GET /api/printers/{id}
func (h *CatalogHandler) GetPrinterModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid printer model ID")
		return
	}

	model, err := h.getPrinterHandler.Handle(query.GetPrinterModelQuery{ID: id})
	if err != nil {
		respondError(w, http.StatusNotFound, "Printer model not found")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: model})
}

// CreatePrinterModel handles POST /api/printers
func (h *CatalogHandler) CreatePrinterModel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		CompatibleInks []uint `json:"compatible_inks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	model, err := h.createPrinterHandler.Handle(command.CreatePrinterModelCommand{
		Name:           req.Name,
		CompatibleInks: req.CompatibleInks,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, Response{Success: true, Data: model})
}

// UpdatePrinterModel handles PUT /api/printers/{id}
func (h *CatalogHandler) UpdatePrinterModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid printer model ID")
		return
	}

	var req struct {
		Name           string `json:"name"`
		CompatibleInks []uint `json:"compatible_inks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	model, err := h.updatePrinterHandler.Handle(command.UpdatePrinterModelCommand{
		ID:             id,
		Name:           req.Name,
		CompatibleInks: req.CompatibleInks,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPrinterModelNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: model})
}

// DeletePrinterModel handles DELETE /api/printers/{id}
func (h *CatalogHandler) DeletePrinterModel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid printer model ID")
		return
	}

	if err := h.deletePrinterHandler.Handle(command.DeletePrinterModelCommand{ID: id}); err != nil {
		if errors.Is(err, domain.ErrPrinterModelNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Printer model deleted"})
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	router.HandleFunc("/api/inks/models", authn.Authenticate(h.ListInkModels)).Methods("GET")
	router.HandleFunc("/api/inks/models", authn.RequireAdmin(h.CreateInkModel)).Methods("POST")
	router.HandleFunc("/api/inks/models/{id}", authn.Authenticate(h.GetInkModel)).Methods("GET")
	router.HandleFunc("/api/inks/models/{id}", authn.RequireAdmin(h.UpdateInkModel)).Methods("PUT")
	router.HandleFunc("/api/inks/models/{id}", authn.RequireAdmin(h.DeleteInkModel)).Methods("DELETE")

	router.HandleFunc("/api/printers", authn.Authenticate(h.ListPrinterModels)).Methods("GET")
	router.HandleFunc("/api/printers", authn.RequireAdmin(h.CreatePrinterModel)).Methods("POST")
	router.HandleFunc("/api/printers/{id}", authn.Authenticate(h.GetPrinterModel)).Methods("GET")
	router.HandleFunc("/api/printers/{id}", authn.RequireAdmin(h.UpdatePrinterModel)).Methods("PUT")
	router.HandleFunc("/api/printers/{id}", authn.RequireAdmin(h.DeletePrinterModel)).Methods("DELETE")
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
