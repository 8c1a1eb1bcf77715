package command

import (
	"context"
	"fmt"

	"github.com/printops/inkwell/internal/inventory/domain"
)

// DeleteLotCommand represents the command to delete an inventory lot
type DeleteLotCommand struct {
	ID uint
}

// DeleteLotHandler handles delete lot command
type DeleteLotHandler struct {
	lots domain.LotRepository
}

// NewDeleteLotHandler creates a new delete lot handler
func NewDeleteLotHandler(lots domain.LotRepository) *DeleteLotHandler {
	return &DeleteLotHandler{lots: lots}
}

// Handle executes the delete lot command
func (h *DeleteLotHandler) Handle(ctx context.Context, cmd DeleteLotCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}

	if err := h.lots.Delete(ctx, cmd.ID); err != nil {
		return fmt.Errorf("failed to delete inventory lot: %w", err)
	}
	return nil
}
