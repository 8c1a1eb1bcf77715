package command

import (
	"context"
	"fmt"
	"time"

	inventorydomain "github.com/printops/inkwell/internal/inventory/domain"
	"github.com/printops/inkwell/internal/request/domain"
)

// CreateRequestCommand represents the command to create an ink request
type CreateRequestCommand struct {
	LotID       uint
	RequesterID uint
	Department  string
	Quantity    int
}

// CreateRequestHandler handles create request command
type CreateRequestHandler struct {
	requests domain.RequestRepository
	lots     inventorydomain.LotRepository
}

// NewCreateRequestHandler creates a new create request handler
func NewCreateRequestHandler(requests domain.RequestRepository, lots inventorydomain.LotRepository) *CreateRequestHandler {
	return &CreateRequestHandler{requests: requests, lots: lots}
}

// Handle executes the create request command. The request starts with both
// approval stages pending; stock is not touched until admin approval.
func (h *CreateRequestHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (*domain.InkRequest, error) {
	if cmd.LotID == 0 {
		return nil, fmt.Errorf("lot_id is required")
	}
	if cmd.RequesterID == 0 {
		return nil, fmt.Errorf("requester_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	if _, err := h.lots.FindByID(ctx, cmd.LotID); err != nil {
		return nil, err
	}

	request := &domain.InkRequest{
		LotID:              cmd.LotID,
		RequesterID:        cmd.RequesterID,
		Department:         cmd.Department,
		QuantityRequested:  cmd.Quantity,
		SupervisorApproval: domain.StatusPending,
		AdminApproval:      domain.StatusPending,
		Status:             domain.StatusPending,
		RequestDate:        time.Now(),
	}

	if err := h.requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create ink request: %w", err)
	}
	return request, nil
}
