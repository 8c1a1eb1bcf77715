package query

import (
	"context"
	"fmt"

	"github.com/printops/inkwell/internal/request/domain"
)

// ListAdminQueueQuery lists supervisor-approved requests awaiting an admin
// decision.
type ListAdminQueueQuery struct {
	Limit  int
	Offset int
}

// ListAdminQueueHandler handles the admin queue query
type ListAdminQueueHandler struct {
	requests domain.RequestRepository
}

// NewListAdminQueueHandler creates a new admin queue handler
func NewListAdminQueueHandler(requests domain.RequestRepository) *ListAdminQueueHandler {
	return &ListAdminQueueHandler{requests: requests}
}

// Handle executes the admin queue query
func (h *ListAdminQueueHandler) Handle(ctx context.Context, q ListAdminQueueQuery) ([]domain.InkRequest, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	requests, err := h.requests.FindAdminQueue(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin queue: %w", err)
	}
	return requests, nil
}
