package command

import (
	"fmt"

	"github.com/printops/inkwell/internal/user/domain"
)

// UpdateUserCommand represents the command to update a user's profile
type UpdateUserCommand struct {
	ID         uint
	Email      string
	FullName   string
	Department string
}

// UpdateUserHandler handles update user command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if cmd.Email != "" && cmd.Email != user.Email {
		if _, err := h.repo.FindByEmail(cmd.Email); err == nil {
			return nil, fmt.Errorf("email already registered")
		}
		user.Email = cmd.Email
	}
	if cmd.FullName != "" {
		user.FullName = cmd.FullName
	}
	if cmd.Department != "" {
		user.Department = cmd.Department
	}

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
