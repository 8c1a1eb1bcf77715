package query

import (
	"context"
	"fmt"

	"github.com/printops/inkwell/internal/inventory/domain"
)

// ListInUseQuery represents the query to list in-use ledger records.
// InkModelID = 0 lists all records.
type ListInUseQuery struct {
	InkModelID uint
	Limit      int
	Offset     int
}

// ListInUseHandler handles list in-use query
type ListInUseHandler struct {
	ledger domain.LedgerRepository
}

// NewListInUseHandler creates a new list in-use handler
func NewListInUseHandler(ledger domain.LedgerRepository) *ListInUseHandler {
	return &ListInUseHandler{ledger: ledger}
}

// Handle executes the list in-use query
func (h *ListInUseHandler) Handle(ctx context.Context, q ListInUseQuery) ([]domain.InkInUseRecord, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	records, err := h.ledger.FindAll(ctx, q.InkModelID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger records: %w", err)
	}
	return records, nil
}
