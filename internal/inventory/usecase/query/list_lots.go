package query

import (
	"context"
	"fmt"

	"github.com/printops/inkwell/internal/inventory/domain"
)

// ListLotsQuery represents the query to list inventory lots
type ListLotsQuery struct {
	Limit  int
	Offset int
}

// ListLotsHandler handles list lots query
type ListLotsHandler struct {
	lots domain.LotRepository
}

// NewListLotsHandler creates a new list lots handler
func NewListLotsHandler(lots domain.LotRepository) *ListLotsHandler {
	return &ListLotsHandler{lots: lots}
}

// Handle executes the list lots query
func (h *ListLotsHandler) Handle(ctx context.Context, q ListLotsQuery) ([]domain.InventoryLot, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	lots, err := h.lots.FindAll(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory lots: %w", err)
	}
	return lots, nil
}

// GetLotQuery represents the query to get a single inventory lot
type GetLotQuery struct {
	ID uint
}

// GetLotHandler handles get lot query
type GetLotHandler struct {
	lots domain.LotRepository
}

// NewGetLotHandler creates a new get lot handler
func NewGetLotHandler(lots domain.LotRepository) *GetLotHandler {
	return &GetLotHandler{lots: lots}
}

// Handle executes the get lot query
func (h *GetLotHandler) Handle(ctx context.Context, q GetLotQuery) (*domain.InventoryLot, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	return h.lots.FindByID(ctx, q.ID)
}
