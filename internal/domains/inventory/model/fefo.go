package model

import "sort"

// SortFEFO orders rows first-expired-first-out: expiry ascending with null
// expiries last, then id ascending for a stable tiebreak.
func SortFEFO(rows []Inventory) {
	sort.SliceStable(rows, func(a, b int) bool {
		ea, eb := rows[a].ExpiryDate, rows[b].ExpiryDate
		switch {
		case ea == nil && eb == nil:
			return rows[a].ID.String() < rows[b].ID.String()
		case ea == nil:
			return false
		case eb == nil:
			return true
		case !ea.Equal(*eb):
			return ea.Before(*eb)
		default:
			return rows[a].ID.String() < rows[b].ID.String()
		}
	})
}

// Take is one planned draw from an inventory row.
type Take struct {
	Row Inventory
	Qty int
}

// PlanTakes greedily drains FEFO-ordered rows until needed is satisfied.
// usable selects how much of a row may be drawn (available vs full qty).
// Returns the takes and the unsatisfied remainder.
func PlanTakes(rows []Inventory, needed int, usable func(Inventory) int) ([]Take, int) {
	SortFEFO(rows)

	var takes []Take
	for _, row := range rows {
		if needed <= 0 {
			break
		}
		can := usable(row)
		if can <= 0 {
			continue
		}
		take := can
		if take > needed {
			take = needed
		}
		takes = append(takes, Take{Row: row, Qty: take})
		needed -= take
	}

	return takes, needed
}
