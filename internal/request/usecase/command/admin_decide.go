package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	inventorydomain "github.com/printops/inkwell/internal/inventory/domain"
	"github.com/printops/inkwell/internal/request/domain"
	"github.com/printops/inkwell/kafka"
	"github.com/printops/inkwell/pkg/logger"
)

// AdminDecideCommand represents an admin's decision on a supervisor-approved
// request. On approval the deduction engine runs and the optional consumption
// fields record what was left of the opened unit.
type AdminDecideCommand struct {
	RequestID         uint
	AdminID           uint
	Action            string
	ConsumptionStatus string
	RemainingQuantity int
}

// IssuancePublisher publishes fulfillment events for downstream audit
type IssuancePublisher interface {
	PublishInkIssued(ctx context.Context, event kafka.InkIssuedEvent) error
}

// AdminDecideHandler handles the admin approval stage and the stock
// deduction that fulfillment requires. All writes happen in one transaction:
// a shortfall aborts everything and the request keeps its prior state.
type AdminDecideHandler struct {
	tx        domain.TxManager
	publisher IssuancePublisher
}

// NewAdminDecideHandler creates a new admin decide handler. The publisher
// may be nil when eventing is not configured.
func NewAdminDecideHandler(tx domain.TxManager, publisher IssuancePublisher) *AdminDecideHandler {
	return &AdminDecideHandler{tx: tx, publisher: publisher}
}

// Handle executes the admin decision
func (h *AdminDecideHandler) Handle(ctx context.Context, cmd AdminDecideCommand) (*domain.InkRequest, error) {
	if cmd.RequestID == 0 {
		return nil, fmt.Errorf("request_id is required")
	}
	if cmd.AdminID == 0 {
		return nil, fmt.Errorf("admin_id is required")
	}

	action := strings.ToLower(cmd.Action)
	if action != domain.ActionApprove && action != domain.ActionReject {
		return nil, domain.ErrInvalidAction
	}

	consumption := strings.ToLower(cmd.ConsumptionStatus)
	if action == domain.ActionApprove && consumption == domain.ConsumptionPartiallyUsed && cmd.RemainingQuantity <= 0 {
		return nil, fmt.Errorf("remaining_quantity must be greater than 0 for partial use")
	}

	var (
		out      *domain.InkRequest
		issuance *domain.InkIssuance
	)
	err := h.tx.Do(ctx, func(r domain.TxRepos) error {
		request, err := r.Requests.FindByIDForUpdate(ctx, cmd.RequestID)
		if err != nil {
			return err
		}
		if request.SupervisorApproval != domain.StatusApproved {
			return domain.ErrNotEligible
		}
		if !request.AdminEligible() {
			return domain.ErrStateConflict
		}

		now := time.Now()
		request.AdminApproverID = &cmd.AdminID
		request.AdminDecidedAt = &now

		if action == domain.ActionReject {
			request.AdminApproval = domain.StatusRejected
			request.Status = domain.StatusRejected
			if err := r.Requests.Update(ctx, request); err != nil {
				return err
			}
			out = request
			return nil
		}

		issuance, err = h.deduct(ctx, r, request, cmd.AdminID, now)
		if err != nil {
			return err
		}

		request.AdminApproval = domain.StatusApproved
		request.Status = domain.StatusFulfilled
		request.ConsumptionStatus = domain.ConsumptionFullyUsed

		if consumption == domain.ConsumptionPartiallyUsed {
			request.ConsumptionStatus = domain.ConsumptionPartiallyUsed
			request.RemainingQuantity = cmd.RemainingQuantity
			if err := h.creditLeftover(ctx, r, request, now); err != nil {
				return err
			}
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

	if issuance != nil {
		h.publishIssued(ctx, out, issuance)
	}
	return out, nil
}

// deduct satisfies the requested quantity from the lot's open unit first and
// only then from sealed stock, so partially-consumed units are drained before
// new ones are opened.
func (h *AdminDecideHandler) deduct(ctx context.Context, r domain.TxRepos, request *domain.InkRequest, adminID uint, now time.Time) (*domain.InkIssuance, error) {
	remaining := request.QuantityRequested
	fromLedger := 0

	record, err := r.Ledger.FindInUseByLotForUpdate(ctx, request.LotID)
	switch {
	case err == nil:
		if record.QuantityUsed > 0 {
			if record.QuantityUsed >= remaining {
				fromLedger = remaining
				record.QuantityUsed -= remaining
				remaining = 0
				if record.QuantityUsed == 0 {
					record.Status = inventorydomain.LedgerTransferred
				}
			} else {
				fromLedger = record.QuantityUsed
				remaining -= record.QuantityUsed
				record.QuantityUsed = 0
				record.Status = inventorydomain.LedgerTransferred
			}
			if err := r.Ledger.Update(ctx, record); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, inventorydomain.ErrNoOpenUnit):
		// Nothing opened for this lot, fall through to sealed stock
	default:
		return nil, err
	}

	if remaining > 0 {
		lot, err := r.Lots.FindByIDForUpdate(ctx, request.LotID)
		if err != nil {
			return nil, err
		}
		if lot.Quantity < remaining {
			return nil, domain.ErrInsufficientStock
		}
		lot.Quantity -= remaining
		if err := r.Lots.Update(ctx, lot); err != nil {
			return nil, err
		}
	}

	issuance := &domain.InkIssuance{
		RequestID:      request.ID,
		LotID:          request.LotID,
		IssuedQuantity: request.QuantityRequested,
		IssuedToID:     request.RequesterID,
		IssuedByID:     adminID,
		IssueDate:      now,
		Source:         sourceLabel(fromLedger, remaining),
	}
	if err := r.Issuances.Create(ctx, issuance); err != nil {
		return nil, err
	}
	return issuance, nil
}

// creditLeftover returns the unused remainder of the opened unit to the
// ledger: onto the lot's open record if one exists, otherwise as a fresh
// record held by the requester.
func (h *AdminDecideHandler) creditLeftover(ctx context.Context, r domain.TxRepos, request *domain.InkRequest, now time.Time) error {
	record, err := r.Ledger.FindInUseByLot(ctx, request.LotID)
	if err == nil {
		record.QuantityUsed += request.RemainingQuantity
		return r.Ledger.Update(ctx, record)
	}
	if !errors.Is(err, inventorydomain.ErrNoOpenUnit) {
		return err
	}

	return r.Ledger.Create(ctx, &inventorydomain.InkInUseRecord{
		LotID:        request.LotID,
		UserID:       request.RequesterID,
		Department:   request.Department,
		QuantityUsed: request.RemainingQuantity,
		Status:       inventorydomain.LedgerInUse,
		AssignedDate: now,
	})
}

// sourceLabel names the pool(s) the issuance was drawn from. fromStock is
// the remainder after the ledger was consumed.
func sourceLabel(fromLedger, fromStock int) string {
	switch {
	case fromLedger > 0 && fromStock > 0:
		return domain.SourceCombined
	case fromLedger > 0:
		return domain.SourceInkInUse
	default:
		return domain.SourceInventory
	}
}

func (h *AdminDecideHandler) publishIssued(ctx context.Context, request *domain.InkRequest, issuance *domain.InkIssuance) {
	if h.publisher == nil {
		return
	}

	event := kafka.InkIssuedEvent{
		RequestID:      request.ID,
		LotID:          issuance.LotID,
		IssuedQuantity: issuance.IssuedQuantity,
		IssuedToID:     issuance.IssuedToID,
		IssuedByID:     issuance.IssuedByID,
		Source:         issuance.Source,
	}
	if err := h.publisher.PublishInkIssued(ctx, event); err != nil {
		// Eventing is best-effort, the fulfillment already committed
		logger.Warn(ctx).
			Err(err).
			Uint("request_id", request.ID).
			Msg("Failed to publish ink issued event")
	}
}
