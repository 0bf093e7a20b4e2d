package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusAllocated, true},
		{StatusAllocated, StatusPicked, true},
		{StatusPicked, StatusPacked, true},
		{StatusPicked, StatusShipped, true},
		{StatusPacked, StatusShipped, true},

		// Short pick releases allocations and reverts to PENDING.
		{StatusAllocated, StatusPending, true},
		{StatusPicked, StatusPending, true},
		{StatusPacked, StatusPending, true},

		// Shipped is terminal.
		{StatusShipped, StatusPending, false},
		{StatusShipped, StatusPacked, false},

		// No skipping ahead.
		{StatusPending, StatusPicked, false},
		{StatusPending, StatusShipped, false},
		{StatusAllocated, StatusPacked, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransitionTo(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusAllocated, StatusPicked, StatusPacked, StatusShipped} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("CANCELLED"))
	assert.False(t, IsValidStatus(""))
}

func TestEnsureAllocatable(t *testing.T) {
	assert.NoError(t, EnsureAllocatable(StatusPending))

	// Allocating twice must not double-reserve.
	for _, s := range []string{StatusAllocated, StatusPicked, StatusPacked, StatusShipped} {
		err := EnsureAllocatable(s)
		assert.True(t, IsInvalidStateError(err), s)
	}
}

func TestEnsurePickable(t *testing.T) {
	assert.NoError(t, EnsurePickable(StatusAllocated))
	assert.NoError(t, EnsurePickable(StatusPicked))

	// A partially allocated order is not released to the floor yet.
	for _, s := range []string{StatusPending, StatusPacked, StatusShipped} {
		err := EnsurePickable(s)
		assert.True(t, IsInvalidStateError(err), s)
	}
}

func TestEnsureShortPickable(t *testing.T) {
	assert.NoError(t, EnsureShortPickable(StatusAllocated))
	assert.NoError(t, EnsureShortPickable(StatusPicked))
	assert.NoError(t, EnsureShortPickable(StatusPacked))

	// Shipped orders never regress.
	assert.True(t, IsInvalidStateError(EnsureShortPickable(StatusShipped)))
	assert.True(t, IsInvalidStateError(EnsureShortPickable(StatusPending)))
}

func TestCapShortage(t *testing.T) {
	assert.Equal(t, 3, CapShortage(5, 3))

	// Over-reported shortage releases only what was reserved.
	assert.Equal(t, 5, CapShortage(5, 9))
	assert.Equal(t, 0, CapShortage(0, 4))
	assert.Equal(t, 0, CapShortage(5, 0))
}

func TestOrderLineRemaining(t *testing.T) {
	line := OrderLine{QtyOrdered: 10, QtyAllocated: 8, QtyPicked: 3}
	assert.Equal(t, 5, line.Remaining())

	// Fully picked lines have nothing outstanding.
	line.QtyPicked = 8
	assert.Equal(t, 0, line.Remaining())
}
