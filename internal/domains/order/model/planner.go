package model

import (
	"sort"

	"github.com/google/uuid"
)

// SortWaveLines orders a pick list into a walk path by bin coordinates,
// x first then y.
func SortWaveLines(lines []WaveLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].X != lines[j].X {
			return lines[i].X < lines[j].X
		}
		return lines[i].Y < lines[j].Y
	})
}

// ClusterDemand is the outstanding quantity one order line still needs.
// Demands are served first come first served as bins are drained.
type ClusterDemand struct {
	OrderNumber string
	LineID      uuid.UUID
	Remaining   int
}

// DistributeTake splits a grab of take units across the waiting demands in
// order, mutating their Remaining. Returns the per-tote split.
func DistributeTake(take int, demands []*ClusterDemand) []ClusterAllocation {
	var allocations []ClusterAllocation
	for _, d := range demands {
		if take <= 0 {
			break
		}
		if d.Remaining <= 0 {
			continue
		}
		amount := min(d.Remaining, take)
		allocations = append(allocations, ClusterAllocation{
			OrderNumber: d.OrderNumber,
			Qty:         amount,
			LineID:      d.LineID,
		})
		d.Remaining -= amount
		take -= amount
	}
	return allocations
}

// SortClusterTasks orders the walk alphabetically by location code.
func SortClusterTasks(tasks []ClusterTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Location < tasks[j].Location
	})
}
