package command

import (
	"fmt"
	"strings"

	"github.com/printops/inkwell/internal/user/domain"
	"github.com/printops/inkwell/pkg/auth"
)

// RegisterUserCommand represents the command to register a user
type RegisterUserCommand struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	Department string
	Role       string
}

// RegisterUserHandler handles user registration
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if cmd.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	role := strings.ToLower(cmd.Role)
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", cmd.Role)
	}

	if _, err := h.repo.FindByUsername(cmd.Username); err == nil {
		return nil, fmt.Errorf("username already taken")
	}
	if _, err := h.repo.FindByEmail(cmd.Email); err == nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:   cmd.Username,
		Email:      cmd.Email,
		Password:   hash,
		FullName:   cmd.FullName,
		Department: cmd.Department,
		Role:       role,
		IsActive:   true,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
