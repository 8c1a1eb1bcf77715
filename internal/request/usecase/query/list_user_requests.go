package query

import (
	"context"
	"fmt"

	"github.com/printops/inkwell/internal/request/domain"
)

// ListUserRequestsQuery lists a requester's own history
type ListUserRequestsQuery struct {
	RequesterID uint
	Limit       int
	Offset      int
}

// ListUserRequestsHandler handles the requester history query
type ListUserRequestsHandler struct {
	requests domain.RequestRepository
}

// NewListUserRequestsHandler creates a new requester history handler
func NewListUserRequestsHandler(requests domain.RequestRepository) *ListUserRequestsHandler {
	return &ListUserRequestsHandler{requests: requests}
}

// Handle executes the requester history query
func (h *ListUserRequestsHandler) Handle(ctx context.Context, q ListUserRequestsQuery) ([]domain.InkRequest, error) {
	if q.RequesterID == 0 {
		return nil, fmt.Errorf("requester_id is required")
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	requests, err := h.requests.FindByRequester(ctx, q.RequesterID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}
