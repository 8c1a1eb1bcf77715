package command

import (
	"fmt"

	"github.com/printops/inkwell/internal/user/domain"
	"github.com/printops/inkwell/pkg/auth"
)

// ChangePasswordCommand represents a self-service password change
type ChangePasswordCommand struct {
	UserID          uint
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// ChangePasswordHandler handles password changes
type ChangePasswordHandler struct {
	repo domain.UserRepository
}

// NewChangePasswordHandler creates a new change password handler
func NewChangePasswordHandler(repo domain.UserRepository) *ChangePasswordHandler {
	return &ChangePasswordHandler{repo: repo}
}

// Handle executes the change password command
func (h *ChangePasswordHandler) Handle(cmd ChangePasswordCommand) error {
	if cmd.UserID == 0 {
		return fmt.Errorf("user_id is required")
	}
	if cmd.OldPassword == "" || cmd.NewPassword == "" {
		return fmt.Errorf("old and new passwords are required")
	}
	if cmd.NewPassword != cmd.ConfirmPassword {
		return fmt.Errorf("password confirmation does not match")
	}
	if len(cmd.NewPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return fmt.Errorf("user not found")
	}

	if !auth.CheckPassword(user.Password, cmd.OldPassword) {
		return fmt.Errorf("old password is incorrect")
	}

	hash, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hash
	if err := h.repo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
