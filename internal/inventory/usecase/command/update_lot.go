package command

import (
	"context"
	"fmt"

	catalogdomain "github.com/printops/inkwell/internal/catalog/domain"
	"github.com/printops/inkwell/internal/inventory/domain"
)

// UpdateLotCommand represents the command to update an inventory lot.
// Quantity is a pointer so that zero can be set explicitly.
type UpdateLotCommand struct {
	ID            uint
	Color         string
	VolumePerUnit float64
	Quantity      *int
}

// UpdateLotHandler handles update lot command
type UpdateLotHandler struct {
	lots   domain.LotRepository
	models catalogdomain.InkModelRepository
}

// NewUpdateLotHandler creates a new update lot handler
func NewUpdateLotHandler(lots domain.LotRepository, models catalogdomain.InkModelRepository) *UpdateLotHandler {
	return &UpdateLotHandler{lots: lots, models: models}
}

// Handle executes the update lot command. The initial quantity baseline is
// immutable; quantity adjustments must stay within [0, initial_quantity].
func (h *UpdateLotHandler) Handle(ctx context.Context, cmd UpdateLotCommand) (*domain.InventoryLot, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	lot, err := h.lots.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Color != "" && cmd.Color != lot.Color {
		model, err := h.models.FindByID(lot.InkModelID)
		if err != nil {
			return nil, err
		}
		if !model.HasColor(cmd.Color) {
			return nil, fmt.Errorf("color %q is not declared by ink model %q", cmd.Color, model.Name)
		}
		lot.Color = cmd.Color
	}
	if cmd.VolumePerUnit > 0 {
		lot.VolumePerUnit = cmd.VolumePerUnit
	}
	if cmd.Quantity != nil {
		if *cmd.Quantity < 0 || *cmd.Quantity > lot.InitialQuantity {
			return nil, domain.ErrQuantityBounds
		}
		lot.Quantity = *cmd.Quantity
	}

	if err := h.lots.Update(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to update inventory lot: %w", err)
	}
	return lot, nil
}
