package query

import (
	"context"
	"fmt"

	"github.com/printops/inkwell/internal/request/domain"
)

// ListIssuancesQuery lists issuance audit records
type ListIssuancesQuery struct {
	Limit  int
	Offset int
}

// ListIssuancesHandler handles the issuance listing query
type ListIssuancesHandler struct {
	issuances domain.IssuanceRepository
}

// NewListIssuancesHandler creates a new issuance listing handler
func NewListIssuancesHandler(issuances domain.IssuanceRepository) *ListIssuancesHandler {
	return &ListIssuancesHandler{issuances: issuances}
}

// Handle executes the issuance listing query
func (h *ListIssuancesHandler) Handle(ctx context.Context, q ListIssuancesQuery) ([]domain.InkIssuance, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	issuances, err := h.issuances.FindAll(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list issuances: %w", err)
	}
	return issuances, nil
}
