package query

import (
	"fmt"

	"github.com/printops/inkwell/internal/catalog/domain"
)

// ListInkModelsQuery represents the query to list ink models
type ListInkModelsQuery struct {
	Limit  int
	Offset int
}

// ListInkModelsHandler handles list ink models query
type ListInkModelsHandler struct {
	repo domain.InkModelRepository
}

// NewListInkModelsHandler creates a new list ink models handler
func NewListInkModelsHandler(repo domain.InkModelRepository) *ListInkModelsHandler {
	return &ListInkModelsHandler{repo: repo}
}

// Handle executes the list ink models query
func (h *ListInkModelsHandler) Handle(q ListInkModelsQuery) ([]domain.InkModel, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	models, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ink models: %w", err)
	}
	return models, nil
}

// GetInkModelQuery represents the query to get a single ink model
type GetInkModelQuery struct {
	ID uint
}

// GetInkModelHandler handles get ink model query
type GetInkModelHandler struct {
	repo domain.InkModelRepository
}

// NewGetInkModelHandler creates a new get ink model handler
func NewGetInkModelHandler(repo domain.InkModelRepository) *GetInkModelHandler {
	return &GetInkModelHandler{repo: repo}
}

// Handle executes the get ink model query
func (h *GetInkModelHandler) Handle(q GetInkModelQuery) (*domain.InkModel, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	return h.repo.FindByID(q.ID)
}
