package query

import (
	"context"
	"fmt"

	"github.com/printops/inkwell/internal/request/domain"
)

// ListSupervisorQueueQuery lists requests awaiting a supervisor decision
type ListSupervisorQueueQuery struct {
	Limit  int
	Offset int
}

// ListSupervisorQueueHandler handles the supervisor queue query
type ListSupervisorQueueHandler struct {
	requests domain.RequestRepository
}

// NewListSupervisorQueueHandler creates a new supervisor queue handler
func NewListSupervisorQueueHandler(requests domain.RequestRepository) *ListSupervisorQueueHandler {
	return &ListSupervisorQueueHandler{requests: requests}
}

// Handle executes the supervisor queue query
func (h *ListSupervisorQueueHandler) Handle(ctx context.Context, q ListSupervisorQueueQuery) ([]domain.InkRequest, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	requests, err := h.requests.FindSupervisorQueue(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list supervisor queue: %w", err)
	}
	return requests, nil
}
