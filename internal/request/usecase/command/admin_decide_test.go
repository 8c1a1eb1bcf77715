package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventorydomain "github.com/printops/inkwell/internal/inventory/domain"
	"github.com/printops/inkwell/internal/request/domain"
	"github.com/printops/inkwell/internal/request/usecase/command"
)

const (
	adminID      = uint(99)
	supervisorID = uint(50)
	requesterID  = uint(7)
)

// seedApprovedRequest stores a lot with the given stock and a
// supervisor-approved request for quantity units from it.
func seedApprovedRequest(store *memStore, stock, quantity int) (*domain.InkRequest, *inventorydomain.InventoryLot) {
	lot := &inventorydomain.InventoryLot{
		InkModelID:      1,
		Color:           "cyan",
		Quantity:        stock,
		InitialQuantity: stock,
	}
	fakeLots := &fakeLotRepo{store: store}
	if err := fakeLots.Create(context.Background(), lot); err != nil {
		panic(err)
	}

	sup := supervisorID
	request := &domain.InkRequest{
		LotID:                lot.ID,
		RequesterID:          requesterID,
		Department:           "prepress",
		QuantityRequested:    quantity,
		SupervisorApproval:   domain.StatusApproved,
		SupervisorApproverID: &sup,
		AdminApproval:        domain.StatusPending,
		Status:               domain.StatusPending,
	}
	fakeRequests := &fakeRequestRepo{store: store}
	if err := fakeRequests.Create(context.Background(), request); err != nil {
		panic(err)
	}
	return request, lot
}

func seedOpenUnit(store *memStore, lotID uint, quantity int) *inventorydomain.InkInUseRecord {
	record := &inventorydomain.InkInUseRecord{
		LotID:        lotID,
		UserID:       requesterID,
		QuantityUsed: quantity,
		Status:       inventorydomain.LedgerInUse,
	}
	fakeLedger := &fakeLedgerRepo{store: store}
	if err := fakeLedger.Create(context.Background(), record); err != nil {
		panic(err)
	}
	return record
}

func TestAdminDecide_FulfillFromInventory(t *testing.T) {
	store := newMemStore()
	request, lot := seedApprovedRequest(store, 20, 10)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	out, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "fully_used",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFulfilled, out.Status)
	assert.Equal(t, domain.StatusApproved, out.AdminApproval)
	assert.Equal(t, domain.ConsumptionFullyUsed, out.ConsumptionStatus)
	require.NotNil(t, out.AdminApproverID)
	assert.Equal(t, adminID, *out.AdminApproverID)
	assert.NotNil(t, out.AdminDecidedAt)

	assert.Equal(t, 10, store.lots[lot.ID].Quantity)

	require.Len(t, store.issuances, 1)
	issuance := store.issuances[0]
	assert.Equal(t, request.ID, issuance.RequestID)
	assert.Equal(t, 10, issuance.IssuedQuantity)
	assert.Equal(t, requesterID, issuance.IssuedToID)
	assert.Equal(t, adminID, issuance.IssuedByID)
	assert.Equal(t, domain.SourceInventory, issuance.Source)
}

func TestAdminDecide_OpenUnitDrainedBeforeStock(t *testing.T) {
	store := newMemStore()
	request, lot := seedApprovedRequest(store, 20, 10)
	record := seedOpenUnit(store, lot.ID, 4)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "fully_used",
	})
	require.NoError(t, err)

	// 4 units came from the open unit, the remaining 6 from sealed stock
	assert.Equal(t, 14, store.lots[lot.ID].Quantity)
	assert.Equal(t, 0, store.ledger[record.ID].QuantityUsed)
	assert.Equal(t, inventorydomain.LedgerTransferred, store.ledger[record.ID].Status)

	require.Len(t, store.issuances, 1)
	assert.Equal(t, domain.SourceCombined, store.issuances[0].Source)
	assert.Equal(t, 10, store.issuances[0].IssuedQuantity)
}

func TestAdminDecide_OpenUnitCoversWholeRequest(t *testing.T) {
	store := newMemStore()
	request, lot := seedApprovedRequest(store, 20, 10)
	record := seedOpenUnit(store, lot.ID, 15)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "fully_used",
	})
	require.NoError(t, err)

	// Sealed stock untouched, open unit keeps the remainder
	assert.Equal(t, 20, store.lots[lot.ID].Quantity)
	assert.Equal(t, 5, store.ledger[record.ID].QuantityUsed)
	assert.Equal(t, inventorydomain.LedgerInUse, store.ledger[record.ID].Status)

	require.Len(t, store.issuances, 1)
	assert.Equal(t, domain.SourceInkInUse, store.issuances[0].Source)
}

func TestAdminDecide_InsufficientStockRollsBackEverything(t *testing.T) {
	store := newMemStore()
	request, lot := seedApprovedRequest(store, 5, 10)
	record := seedOpenUnit(store, lot.ID, 2)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "fully_used",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// The request keeps its prior state and no partial write survives,
	// including the ledger drain that happened before the shortfall.
	stored := store.requests[request.ID]
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, domain.StatusPending, stored.AdminApproval)
	assert.Nil(t, stored.AdminApproverID)
	assert.Equal(t, 5, store.lots[lot.ID].Quantity)
	assert.Equal(t, 2, store.ledger[record.ID].QuantityUsed)
	assert.Equal(t, inventorydomain.LedgerInUse, store.ledger[record.ID].Status)
	assert.Empty(t, store.issuances)
}

func TestAdminDecide_PartialUseCreditsLeftover(t *testing.T) {
	store := newMemStore()
	request, lot := seedApprovedRequest(store, 20, 10)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	out, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "partially_used",
		RemainingQuantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ConsumptionPartiallyUsed, out.ConsumptionStatus)
	assert.Equal(t, 3, out.RemainingQuantity)
	assert.Equal(t, 10, store.lots[lot.ID].Quantity)

	require.Len(t, store.ledger, 1)
	for _, record := range store.ledger {
		assert.Equal(t, lot.ID, record.LotID)
		assert.Equal(t, requesterID, record.UserID)
		assert.Equal(t, 3, record.QuantityUsed)
		assert.Equal(t, inventorydomain.LedgerInUse, record.Status)
	}
}

func TestAdminDecide_PartialUseTopsUpOpenRecord(t *testing.T) {
	store := newMemStore()
	request, lot := seedApprovedRequest(store, 20, 10)
	record := seedOpenUnit(store, lot.ID, 15)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "partially_used",
		RemainingQuantity: 3,
	})
	require.NoError(t, err)

	// 15 - 10 issued + 3 credited back
	assert.Equal(t, 8, store.ledger[record.ID].QuantityUsed)
	assert.Equal(t, inventorydomain.LedgerInUse, store.ledger[record.ID].Status)
	assert.Len(t, store.ledger, 1)
}

func TestAdminDecide_PartialUseRequiresRemainingQuantity(t *testing.T) {
	store := newMemStore()
	request, _ := seedApprovedRequest(store, 20, 10)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "partially_used",
	})
	assert.Error(t, err)
	assert.Empty(t, store.issuances)
}

func TestAdminDecide_Reject(t *testing.T) {
	store := newMemStore()
	request, lot := seedApprovedRequest(store, 20, 10)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	out, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID: request.ID,
		AdminID:   adminID,
		Action:    "reject",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, out.Status)
	assert.Equal(t, domain.StatusRejected, out.AdminApproval)
	assert.Equal(t, 20, store.lots[lot.ID].Quantity)
	assert.Empty(t, store.issuances)
}

func TestAdminDecide_RequiresSupervisorApproval(t *testing.T) {
	store := newMemStore()
	request, _ := seedApprovedRequest(store, 20, 10)
	store.requests[request.ID].SupervisorApproval = domain.StatusPending
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID: request.ID,
		AdminID:   adminID,
		Action:    "approve",
	})
	assert.ErrorIs(t, err, domain.ErrNotEligible)
	assert.Empty(t, store.issuances)
}

func TestAdminDecide_SecondDecisionConflicts(t *testing.T) {
	store := newMemStore()
	request, lot := seedApprovedRequest(store, 20, 10)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "fully_used",
	})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "fully_used",
	})
	assert.ErrorIs(t, err, domain.ErrStateConflict)

	// The replay deducted nothing and issued nothing
	assert.Equal(t, 10, store.lots[lot.ID].Quantity)
	assert.Len(t, store.issuances, 1)
}

func TestAdminDecide_InvalidAction(t *testing.T) {
	store := newMemStore()
	request, _ := seedApprovedRequest(store, 20, 10)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID: request.ID,
		AdminID:   adminID,
		Action:    "maybe",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestAdminDecide_ActionIsCaseInsensitive(t *testing.T) {
	store := newMemStore()
	request, _ := seedApprovedRequest(store, 20, 10)
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, nil)

	out, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "APPROVE",
		ConsumptionStatus: "fully_used",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFulfilled, out.Status)
}

func TestAdminDecide_PublishesIssuanceEvent(t *testing.T) {
	store := newMemStore()
	request, lot := seedApprovedRequest(store, 20, 10)
	publisher := &fakePublisher{}
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, publisher)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "fully_used",
	})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, request.ID, event.RequestID)
	assert.Equal(t, lot.ID, event.LotID)
	assert.Equal(t, 10, event.IssuedQuantity)
	assert.Equal(t, requesterID, event.IssuedToID)
	assert.Equal(t, adminID, event.IssuedByID)
}

func TestAdminDecide_NoEventOnReject(t *testing.T) {
	store := newMemStore()
	request, _ := seedApprovedRequest(store, 20, 10)
	publisher := &fakePublisher{}
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, publisher)

	_, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID: request.ID,
		AdminID:   adminID,
		Action:    "reject",
	})
	require.NoError(t, err)
	assert.Empty(t, publisher.events)
}

func TestAdminDecide_PublishFailureDoesNotFailFulfillment(t *testing.T) {
	store := newMemStore()
	request, _ := seedApprovedRequest(store, 20, 10)
	publisher := &fakePublisher{err: assert.AnError}
	handler := command.NewAdminDecideHandler(&fakeTxManager{store: store}, publisher)

	out, err := handler.Handle(context.Background(), command.AdminDecideCommand{
		RequestID:         request.ID,
		AdminID:           adminID,
		Action:            "approve",
		ConsumptionStatus: "fully_used",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFulfilled, out.Status)
	assert.Len(t, store.issuances, 1)
}
