package command

import (
	"fmt"

	"github.com/printops/inkwell/internal/catalog/domain"
)

// UpdateInkModelCommand represents the command to update an ink model
type UpdateInkModelCommand struct {
	ID     uint
	Name   string
	Colors []string
}

// UpdateInkModelHandler handles update ink model command
type UpdateInkModelHandler struct {
	repo domain.InkModelRepository
}

// NewUpdateInkModelHandler creates a new update ink model handler
func NewUpdateInkModelHandler(repo domain.InkModelRepository) *UpdateInkModelHandler {
	return &UpdateInkModelHandler{repo: repo}
}

// Handle executes the update ink model command
func (h *UpdateInkModelHandler) Handle(cmd UpdateInkModelCommand) (*domain.InkModel, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	model, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" && cmd.Name != model.Name {
		if _, err := h.repo.FindByName(cmd.Name); err == nil {
			return nil, fmt.Errorf("ink model name already exists")
		}
		model.Name = cmd.Name
	}
	if cmd.Colors != nil {
		if len(cmd.Colors) == 0 {
			return nil, fmt.Errorf("at least one color is required")
		}
		model.Colors = cmd.Colors
	}

	if err := h.repo.Update(model); err != nil {
		return nil, fmt.Errorf("failed to update ink model: %w", err)
	}
	return model, nil
}
