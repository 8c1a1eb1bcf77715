package query

import (
	"fmt"

	"github.com/printops/inkwell/internal/catalog/domain"
)

// ListPrinterModelsQuery represents the query to list printer models
type ListPrinterModelsQuery struct {
	Limit  int
	Offset int
}

// ListPrinterModelsHandler handles list printer models query
type ListPrinterModelsHandler struct {
	repo domain.PrinterModelRepository
}

// NewListPrinterModelsHandler creates a new list printer models handler
func NewListPrinterModelsHandler(repo domain.PrinterModelRepository) *ListPrinterModelsHandler {
	return &ListPrinterModelsHandler{repo: repo}
}

// Handle executes the list printer models query
func (h *ListPrinterModelsHandler) Handle(q ListPrinterModelsQuery) ([]domain.PrinterModel, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	models, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list printer models: %w", err)
	}
	return models, nil
}

// GetPrinterModelQuery represents the query to get a single printer model
type GetPrinterModelQuery struct {
	ID uint
}

// GetPrinterModelHandler handles get printer model query
type GetPrinterModelHandler struct {
	repo domain.PrinterModelRepository
}

// NewGetPrinterModelHandler creates a new get printer model handler
func NewGetPrinterModelHandler(repo domain.PrinterModelRepository) *GetPrinterModelHandler {
	return &GetPrinterModelHandler{repo: repo}
}

// Handle executes the get printer model query
func (h *GetPrinterModelHandler) Handle(q GetPrinterModelQuery) (*domain.PrinterModel, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	return h.repo.FindByID(q.ID)
}
