package command

import (
	"fmt"

	"github.com/printops/inkwell/internal/catalog/domain"
)

// DeletePrinterModelCommand represents the command to delete a printer model
type DeletePrinterModelCommand struct {
	ID uint
}

// DeletePrinterModelHandler handles delete printer model command
type DeletePrinterModelHandler struct {
	repo domain.PrinterModelRepository
}

// NewDeletePrinterModelHandler creates a new delete printer model handler
func NewDeletePrinterModelHandler(repo domain.PrinterModelRepository) *DeletePrinterModelHandler {
	return &DeletePrinterModelHandler{repo: repo}
}

// Handle executes the delete printer model command
func (h *DeletePrinterModelHandler) Handle(cmd DeletePrinterModelCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete printer model: %w", err)
	}
	return nil
}
