package command

import (
	"fmt"

	"github.com/printops/inkwell/internal/user/domain"
)

// ToggleActiveCommand represents the command to toggle a user's active flag
type ToggleActiveCommand struct {
	UserID uint
}

// ToggleActiveHandler handles toggle active command
type ToggleActiveHandler struct {
	repo domain.UserRepository
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.UserRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo}
}

// Handle executes the toggle active command
func (h *ToggleActiveHandler) Handle(cmd ToggleActiveCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user_id is required")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	user.IsActive = !user.IsActive
	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to toggle active flag: %w", err)
	}
	return user, nil
}
