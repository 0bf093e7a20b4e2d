package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(lot string, expiry *time.Time, qty, reserved int) Inventory {
	var lotPtr *string
	if lot != "" {
		lotPtr = &lot
	}
	return Inventory{
		ID:               uuid.New(),
		LotNumber:        lotPtr,
		ExpiryDate:       expiry,
		Quantity:         qty,
		ReservedQuantity: reserved,
	}
}

func date(s string) *time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return &d
}

func TestSortFEFOExpirySoonestFirstNullsLast(t *testing.T) {
	rows := []Inventory{
		row("LOT-C", nil, 10, 0),
		row("LOT-B", date("2026-12-01"), 10, 0),
		row("LOT-A", date("2026-06-01"), 10, 0),
	}

	SortFEFO(rows)

	assert.Equal(t, "LOT-A", *rows[0].LotNumber)
	assert.Equal(t, "LOT-B", *rows[1].LotNumber)
	assert.Nil(t, rows[2].ExpiryDate)
}

func TestPlanTakesDrainsInFEFOOrder(t *testing.T) {
	rows := []Inventory{
		row("LOT-B", date("2026-12-01"), 10, 0),
		row("LOT-A", date("2026-06-01"), 4, 0),
	}

	takes, short := PlanTakes(rows, 6, func(i Inventory) int { return i.AvailableQuantity() })

	require.Len(t, takes, 2)
	assert.Equal(t, "LOT-A", *takes[0].Row.LotNumber)
	assert.Equal(t, 4, takes[0].Qty)
	assert.Equal(t, "LOT-B", *takes[1].Row.LotNumber)
	assert.Equal(t, 2, takes[1].Qty)
	assert.Equal(t, 0, short)
}

func TestPlanTakesReportsShortfall(t *testing.T) {
	rows := []Inventory{row("LOT-A", date("2026-06-01"), 5, 3)}

	takes, short := PlanTakes(rows, 6, func(i Inventory) int { return i.AvailableQuantity() })

	require.Len(t, takes, 1)
	assert.Equal(t, 2, takes[0].Qty)
	assert.Equal(t, 4, short)
}

func TestPlanTakesSkipsFullyReservedRows(t *testing.T) {
	rows := []Inventory{
		row("LOT-A", date("2026-06-01"), 5, 5),
		row("LOT-B", date("2026-12-01"), 5, 0),
	}

	takes, short := PlanTakes(rows, 3, func(i Inventory) int { return i.AvailableQuantity() })

	require.Len(t, takes, 1)
	assert.Equal(t, "LOT-B", *takes[0].Row.LotNumber)
	assert.Equal(t, 0, short)
}

func TestAvailableQuantity(t *testing.T) {
	inv := Inventory{Quantity: 10, ReservedQuantity: 4}
	assert.Equal(t, 6, inv.AvailableQuantity())
}
