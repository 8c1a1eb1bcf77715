package command

import (
	"fmt"

	"github.com/printops/inkwell/internal/catalog/domain"
)

// UpdatePrinterModelCommand represents the command to update a printer model
type UpdatePrinterModelCommand struct {
	ID             uint
	Name           string
	CompatibleInks []uint
}

// UpdatePrinterModelHandler handles update printer model command
type UpdatePrinterModelHandler struct {
	printers domain.PrinterModelRepository
	inks     domain.InkModelRepository
}

// NewUpdatePrinterModelHandler creates a new update printer model handler
func NewUpdatePrinterModelHandler(printers domain.PrinterModelRepository, inks domain.InkModelRepository) *UpdatePrinterModelHandler {
	return &UpdatePrinterModelHandler{printers: printers, inks: inks}
}

// Handle executes the update printer model command
func (h *UpdatePrinterModelHandler) Handle(cmd UpdatePrinterModelCommand) (*domain.PrinterModel, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	model, err := h.printers.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" && cmd.Name != model.Name {
		if _, err := h.printers.FindByName(cmd.Name); err == nil {
			return nil, fmt.Errorf("printer model name already exists")
		}
		model.Name = cmd.Name
	}

	if cmd.CompatibleInks != nil {
		compatible, err := resolveInkModels(h.inks, cmd.CompatibleInks)
		if err != nil {
			return nil, err
		}
		model.CompatibleInks = compatible
	}

	if err := h.printers.Update(model); err != nil {
		return nil, fmt.Errorf("failed to update printer model: %w", err)
	}
	return model, nil
}
