package command

import (
	"context"
	"fmt"

	catalogdomain "github.com/printops/inkwell/internal/catalog/domain"
	"github.com/printops/inkwell/internal/inventory/domain"
)

// CreateLotCommand represents the command to create an inventory lot
type CreateLotCommand struct {
	InkModelID    uint
	Color         string
	VolumePerUnit float64
	Quantity      int
}

// CreateLotHandler handles create lot command
type CreateLotHandler struct {
	lots   domain.LotRepository
	models catalogdomain.InkModelRepository
}

// NewCreateLotHandler creates a new create lot handler
func NewCreateLotHandler(lots domain.LotRepository, models catalogdomain.InkModelRepository) *CreateLotHandler {
	return &CreateLotHandler{lots: lots, models: models}
}

// Handle executes the create lot command. The color must belong to the
// referenced ink model's declared colors, and the initial quantity baseline
// is fixed from the starting quantity.
func (h *CreateLotHandler) Handle(ctx context.Context, cmd CreateLotCommand) (*domain.InventoryLot, error) {
	if cmd.InkModelID == 0 {
		return nil, fmt.Errorf("ink_model_id is required")
	}
	if cmd.Color == "" {
		return nil, fmt.Errorf("color is required")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	model, err := h.models.FindByID(cmd.InkModelID)
	if err != nil {
		return nil, err
	}
	if !model.HasColor(cmd.Color) {
		return nil, fmt.Errorf("color %q is not declared by ink model %q", cmd.Color, model.Name)
	}

	lot := &domain.InventoryLot{
		InkModelID:      cmd.InkModelID,
		Color:           cmd.Color,
		VolumePerUnit:   cmd.VolumePerUnit,
		Quantity:        cmd.Quantity,
		InitialQuantity: cmd.Quantity,
	}

	if err := h.lots.Create(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to create inventory lot: %w", err)
	}
	return lot, nil
}
