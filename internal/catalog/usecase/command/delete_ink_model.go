package command

import (
	"fmt"

	"github.com/printops/inkwell/internal/catalog/domain"
)

// DeleteInkModelCommand represents the command to delete an ink model
type DeleteInkModelCommand struct {
	ID uint
}

// DeleteInkModelHandler handles delete ink model command
type DeleteInkModelHandler struct {
	repo domain.InkModelRepository
}

// NewDeleteInkModelHandler creates a new delete ink model handler
func NewDeleteInkModelHandler(repo domain.InkModelRepository) *DeleteInkModelHandler {
	return &DeleteInkModelHandler{repo: repo}
}

// Handle executes the delete ink model command. Deletion is blocked while
// any inventory lot still references the model.
func (h *DeleteInkModelHandler) Handle(cmd DeleteInkModelCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}

	if _, err := h.repo.FindByID(cmd.ID); err != nil {
		return err
	}

	refs, err := h.repo.CountLotsReferencing(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to check lot references: %w", err)
	}
	if refs > 0 {
		return domain.ErrInkModelInUse
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete ink model: %w", err)
	}
	return nil
}
