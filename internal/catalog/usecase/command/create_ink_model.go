package command

import (
	"fmt"

	"github.com/printops/inkwell/internal/catalog/domain"
)

// CreateInkModelCommand represents the command to create an ink model
type CreateInkModelCommand struct {
	Name   string
	Colors []string
}

// CreateInkModelHandler handles create ink model command
type CreateInkModelHandler struct {
	repo domain.InkModelRepository
}

// NewCreateInkModelHandler creates a new create ink model handler
func NewCreateInkModelHandler(repo domain.InkModelRepository) *CreateInkModelHandler {
	return &CreateInkModelHandler{repo: repo}
}

// Handle executes the create ink model command
func (h *CreateInkModelHandler) Handle(cmd CreateInkModelCommand) (*domain.InkModel, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if len(cmd.Colors) == 0 {
		return nil, fmt.Errorf("at least one color is required")
	}
	for _, c := range cmd.Colors {
		if c == "" {
			return nil, fmt.Errorf("color names must not be empty")
		}
	}

	if _, err := h.repo.FindByName(cmd.Name); err == nil {
		return nil, fmt.Errorf("ink model name already exists")
	}

	model := &domain.InkModel{
		Name:   cmd.Name,
		Colors: cmd.Colors,
	}

	if err := h.repo.Create(model); err != nil {
		return nil, fmt.Errorf("failed to create ink model: %w", err)
	}
	return model, nil
}
