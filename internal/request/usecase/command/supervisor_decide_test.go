package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printops/inkwell/internal/request/domain"
	"github.com/printops/inkwell/internal/request/usecase/command"
)

func seedPendingRequest(store *memStore) *domain.InkRequest {
	request := &domain.InkRequest{
		LotID:              1,
		RequesterID:        requesterID,
		QuantityRequested:  5,
		SupervisorApproval: domain.StatusPending,
		AdminApproval:      domain.StatusPending,
		Status:             domain.StatusPending,
	}
	fakeRequests := &fakeRequestRepo{store: store}
	if err := fakeRequests.Create(context.Background(), request); err != nil {
		panic(err)
	}
	return request
}

func TestSupervisorDecide_Approve(t *testing.T) {
	store := newMemStore()
	request := seedPendingRequest(store)
	handler := command.NewSupervisorDecideHandler(&fakeTxManager{store: store})

	out, err := handler.Handle(context.Background(), command.SupervisorDecideCommand{
		RequestID:    request.ID,
		SupervisorID: supervisorID,
		Action:       "approve",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, out.SupervisorApproval)
	assert.Equal(t, domain.StatusPending, out.Status)
	assert.Equal(t, domain.StatusPending, out.AdminApproval)
	require.NotNil(t, out.SupervisorApproverID)
	assert.Equal(t, supervisorID, *out.SupervisorApproverID)
	assert.NotNil(t, out.SupervisorDecidedAt)
}

func TestSupervisorDecide_RejectIsTerminal(t *testing.T) {
	store := newMemStore()
	request := seedPendingRequest(store)
	handler := command.NewSupervisorDecideHandler(&fakeTxManager{store: store})

	out, err := handler.Handle(context.Background(), command.SupervisorDecideCommand{
		RequestID:    request.ID,
		SupervisorID: supervisorID,
		Action:       "reject",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, out.SupervisorApproval)
	assert.Equal(t, domain.StatusRejected, out.Status)
}

func TestSupervisorDecide_SecondDecisionConflicts(t *testing.T) {
	store := newMemStore()
	request := seedPendingRequest(store)
	handler := command.NewSupervisorDecideHandler(&fakeTxManager{store: store})

	_, err := handler.Handle(context.Background(), command.SupervisorDecideCommand{
		RequestID:    request.ID,
		SupervisorID: supervisorID,
		Action:       "approve",
	})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), command.SupervisorDecideCommand{
		RequestID:    request.ID,
		SupervisorID: supervisorID,
		Action:       "reject",
	})
	assert.ErrorIs(t, err, domain.ErrStateConflict)

	// The first decision stands
	assert.Equal(t, domain.StatusApproved, store.requests[request.ID].SupervisorApproval)
}

func TestSupervisorDecide_InvalidAction(t *testing.T) {
	store := newMemStore()
	request := seedPendingRequest(store)
	handler := command.NewSupervisorDecideHandler(&fakeTxManager{store: store})

	_, err := handler.Handle(context.Background(), command.SupervisorDecideCommand{
		RequestID:    request.ID,
		SupervisorID: supervisorID,
		Action:       "escalate",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestSupervisorDecide_UnknownRequest(t *testing.T) {
	store := newMemStore()
	handler := command.NewSupervisorDecideHandler(&fakeTxManager{store: store})

	_, err := handler.Handle(context.Background(), command.SupervisorDecideCommand{
		RequestID:    42,
		SupervisorID: supervisorID,
		Action:       "approve",
	})
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}
