package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributeTakeServesDemandsInOrder(t *testing.T) {
	lineA, lineB := uuid.New(), uuid.New()
	demands := []*ClusterDemand{
		{OrderNumber: "ORD-00001", LineID: lineA, Remaining: 5},
		{OrderNumber: "ORD-00002", LineID: lineB, Remaining: 4},
	}

	allocations := DistributeTake(7, demands)

	require.Len(t, allocations, 2)
	assert.Equal(t, "ORD-00001", allocations[0].OrderNumber)
	assert.Equal(t, 5, allocations[0].Qty)
	assert.Equal(t, lineA, allocations[0].LineID)
	assert.Equal(t, "ORD-00002", allocations[1].OrderNumber)
	assert.Equal(t, 2, allocations[1].Qty)

	// The first demand drains fully, the second keeps its shortfall.
	assert.Equal(t, 0, demands[0].Remaining)
	assert.Equal(t, 2, demands[1].Remaining)
}

func TestDistributeTakeSkipsSatisfiedDemands(t *testing.T) {
	demands := []*ClusterDemand{
		{OrderNumber: "ORD-00001", Remaining: 0},
		{OrderNumber: "ORD-00002", Remaining: 3},
	}

	allocations := DistributeTake(3, demands)

	require.Len(t, allocations, 1)
	assert.Equal(t, "ORD-00002", allocations[0].OrderNumber)
	assert.Equal(t, 3, allocations[0].Qty)
}

func TestDistributeTakeNothingLeft(t *testing.T) {
	demands := []*ClusterDemand{{OrderNumber: "ORD-00001", Remaining: 2}}

	assert.Empty(t, DistributeTake(0, demands))
	assert.Equal(t, 2, demands[0].Remaining)
}

func TestSortWaveLinesWalkPath(t *testing.T) {
	lines := []WaveLine{
		{SKU: "C", X: 2, Y: 1},
		{SKU: "A", X: 1, Y: 2},
		{SKU: "B", X: 1, Y: 1},
	}

	SortWaveLines(lines)

	assert.Equal(t, []string{"B", "A", "C"}, []string{lines[0].SKU, lines[1].SKU, lines[2].SKU})
}

func TestSortClusterTasksByLocation(t *testing.T) {
	tasks := []ClusterTask{
		{Location: "B-01-01", SKU: "X"},
		{Location: "A-02-01", SKU: "Y"},
		{Location: "A-01-01", SKU: "Z"},
	}

	SortClusterTasks(tasks)

	assert.Equal(t, "A-01-01", tasks[0].Location)
	assert.Equal(t, "A-02-01", tasks[1].Location)
	assert.Equal(t, "B-01-01", tasks[2].Location)
}
