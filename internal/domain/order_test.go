package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("Forward Path", func(t *testing.T) {
		assert.True(t, CanTransition(OrderStatusPending, OrderStatusConfirmed))
		assert.True(t, CanTransition(OrderStatusConfirmed, OrderStatusPickedUp))
		assert.True(t, CanTransition(OrderStatusPickedUp, OrderStatusActive))
		assert.True(t, CanTransition(OrderStatusActive, OrderStatusReturned))
		assert.True(t, CanTransition(OrderStatusReturned, OrderStatusCompleted))
	})

	t.Run("No Skipping Steps", func(t *testing.T) {
		assert.False(t, CanTransition(OrderStatusPending, OrderStatusPickedUp))
		assert.False(t, CanTransition(OrderStatusConfirmed, OrderStatusActive))
		assert.False(t, CanTransition(OrderStatusPending, OrderStatusCompleted))
	})

	t.Run("No Going Backward", func(t *testing.T) {
		assert.False(t, CanTransition(OrderStatusConfirmed, OrderStatusPending))
		assert.False(t, CanTransition(OrderStatusActive, OrderStatusPickedUp))
	})

	t.Run("Cancel Allowed From Any Non Terminal Status", func(t *testing.T) {
		for _, status := range []OrderStatus{
			OrderStatusPending,
			OrderStatusConfirmed,
			OrderStatusPickedUp,
			OrderStatusActive,
			OrderStatusReturned,
		} {
			assert.True(t, CanTransition(status, OrderStatusCancelled), "expected %s to be cancellable", status)
		}
	})

	t.Run("Terminal Statuses Admit Nothing", func(t *testing.T) {
		for _, next := range []OrderStatus{
			OrderStatusPending,
			OrderStatusConfirmed,
			OrderStatusPickedUp,
			OrderStatusActive,
			OrderStatusReturned,
			OrderStatusCompleted,
			OrderStatusCancelled,
		} {
			assert.False(t, CanTransition(OrderStatusCompleted, next))
			assert.False(t, CanTransition(OrderStatusCancelled, next))
		}
	})

	t.Run("Unknown Status", func(t *testing.T) {
		assert.False(t, CanTransition(OrderStatus("SHIPPED"), OrderStatusActive))
	})
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(OrderStatusCompleted))
	assert.True(t, IsTerminal(OrderStatusCancelled))
	assert.False(t, IsTerminal(OrderStatusPending))
	assert.False(t, IsTerminal(OrderStatusReturned))
}

func TestCustomerCanCancel(t *testing.T) {
	assert.True(t, CustomerCanCancel(OrderStatusPending))
	assert.True(t, CustomerCanCancel(OrderStatusConfirmed))
	assert.False(t, CustomerCanCancel(OrderStatusPickedUp))
	assert.False(t, CustomerCanCancel(OrderStatusActive))
	assert.False(t, CustomerCanCancel(OrderStatusReturned))
	assert.False(t, CustomerCanCancel(OrderStatusCompleted))
	assert.False(t, CustomerCanCancel(OrderStatusCancelled))
}

func TestReservationStatusReleasable(t *testing.T) {
	assert.True(t, ReservationStatusReserved.Releasable())
	assert.True(t, ReservationStatusActive.Releasable())
	assert.False(t, ReservationStatusCompleted.Releasable())
	assert.False(t, ReservationStatusCancelled.Releasable())
}
