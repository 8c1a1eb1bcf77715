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

func TestCreateRequest_StartsFullyPending(t *testing.T) {
	store := newMemStore()
	lots := &fakeLotRepo{store: store}
	lot := &inventorydomain.InventoryLot{InkModelID: 1, Color: "magenta", Quantity: 8, InitialQuantity: 8}
	require.NoError(t, lots.Create(context.Background(), lot))

	handler := command.NewCreateRequestHandler(&fakeRequestRepo{store: store}, lots)

	request, err := handler.Handle(context.Background(), command.CreateRequestCommand{
		LotID:       lot.ID,
		RequesterID: requesterID,
		Department:  "prepress",
		Quantity:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, request.Status)
	assert.Equal(t, domain.StatusPending, request.SupervisorApproval)
	assert.Equal(t, domain.StatusPending, request.AdminApproval)
	assert.Equal(t, 3, request.QuantityRequested)
	assert.False(t, request.RequestDate.IsZero())

	// No stock is touched at request time
	assert.Equal(t, 8, store.lots[lot.ID].Quantity)
}

func TestCreateRequest_UnknownLot(t *testing.T) {
	store := newMemStore()
	handler := command.NewCreateRequestHandler(&fakeRequestRepo{store: store}, &fakeLotRepo{store: store})

	_, err := handler.Handle(context.Background(), command.CreateRequestCommand{
		LotID:       404,
		RequesterID: requesterID,
		Quantity:    1,
	})
	assert.ErrorIs(t, err, inventorydomain.ErrLotNotFound)
}

func TestCreateRequest_RejectsNonPositiveQuantity(t *testing.T) {
	store := newMemStore()
	lots := &fakeLotRepo{store: store}
	lot := &inventorydomain.InventoryLot{InkModelID: 1, Color: "magenta", Quantity: 8, InitialQuantity: 8}
	require.NoError(t, lots.Create(context.Background(), lot))

	handler := command.NewCreateRequestHandler(&fakeRequestRepo{store: store}, lots)

	for _, quantity := range []int{0, -4} {
		_, err := handler.Handle(context.Background(), command.CreateRequestCommand{
			LotID:       lot.ID,
			RequesterID: requesterID,
			Quantity:    quantity,
		})
		assert.Error(t, err)
	}
}
