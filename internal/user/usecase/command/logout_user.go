package command

import (
	"context"
	"fmt"
	"time"

	"github.com/printops/inkwell/pkg/auth"
)

// LogoutUserCommand carries the raw bearer token being surrendered
type LogoutUserCommand struct {
	Token string
}

// LogoutUserHandler revokes the presented token until it would have expired
type LogoutUserHandler struct {
	blacklist auth.TokenBlacklist
}

// NewLogoutUserHandler creates a new logout handler
func NewLogoutUserHandler(blacklist auth.TokenBlacklist) *LogoutUserHandler {
	return &LogoutUserHandler{blacklist: blacklist}
}

// Handle executes the logout command
func (h *LogoutUserHandler) Handle(ctx context.Context, cmd LogoutUserCommand) error {
	if cmd.Token == "" {
		return fmt.Errorf("token is required")
	}

	claims, err := auth.ValidateToken(cmd.Token)
	if err != nil {
		return fmt.Errorf("invalid token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
