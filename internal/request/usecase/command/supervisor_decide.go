package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/printops/inkwell/internal/request/domain"
)

// SupervisorDecideCommand represents a supervisor's decision on a request
type SupervisorDecideCommand struct {
	RequestID    uint
	SupervisorID uint
	Action       string
}

// SupervisorDecideHandler handles the supervisor approval stage
type SupervisorDecideHandler struct {
	tx domain.TxManager
}

// NewSupervisorDecideHandler creates a new supervisor decide handler
func NewSupervisorDecideHandler(tx domain.TxManager) *SupervisorDecideHandler {
	return &SupervisorDecideHandler{tx: tx}
}

// Handle executes the supervisor decision. Only requests whose supervisor
// stage is still pending may be acted on; rejection is terminal.
func (h *SupervisorDecideHandler) Handle(ctx context.Context, cmd SupervisorDecideCommand) (*domain.InkRequest, error) {
	if cmd.RequestID == 0 {
		return nil, fmt.Errorf("request_id is required")
	}
	if cmd.SupervisorID == 0 {
		return nil, fmt.Errorf("supervisor_id is required")
	}

	action := strings.ToLower(cmd.Action)
	if action != domain.ActionApprove && action != domain.ActionReject {
		return nil, domain.ErrInvalidAction
	}

	var out *domain.InkRequest
	err := h.tx.Do(ctx, func(r domain.TxRepos) error {
		request, err := r.Requests.FindByIDForUpdate(ctx, cmd.RequestID)
		if err != nil {
			return err
		}
		if !request.SupervisorPending() {
			return domain.ErrStateConflict
		}

		now := time.Now()
		request.SupervisorApproverID = &cmd.SupervisorID
		request.SupervisorDecidedAt = &now

		if action == domain.ActionApprove {
			request.SupervisorApproval = domain.StatusApproved
		} else {
			request.SupervisorApproval = domain.StatusRejected
			request.Status = domain.StatusRejected
		}

		if err := r.Requests.Update(ctx, request); err != nil {
			return err
		}
		out = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
