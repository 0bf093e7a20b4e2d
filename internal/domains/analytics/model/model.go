package model

import "time"

// SKUVelocity is outbound movement for one SKU over the analysis window.
type SKUVelocity struct {
	SKU        string `json:"sku"`
	TotalMoved int    `json:"total_moved"`
}

// ABCStats reports one classification run.
type ABCStats struct {
	Updated int `json:"updated"`
	A       int `json:"a"`
	B       int `json:"b"`
	C       int `json:"c"`
}

// HeatmapEntry is journal activity for one location.
type HeatmapEntry struct {
	Location string `json:"location"`
	Activity int    `json:"activity"`
}

// DashboardStats is the operations overview panel.
type DashboardStats struct {
	TotalStock     int            `json:"total_stock"`
	TotalLocations int            `json:"total_locations"`
	LowStock       int            `json:"low_stock"`
	RecentMoves    int            `json:"recent_moves"`
	Heatmap        []HeatmapEntry `json:"heatmap"`
}

// DisplayActor maps a missing journal actor to the system identity.
// Scheduled jobs and legacy rows may carry no actor at all.
func DisplayActor(actor *string) string {
	if actor == nil || *actor == "" {
		return "system"
	}
	return *actor
}

// OperatorStat is one row on the activity leaderboard.
type OperatorStat struct {
	Actor        string `json:"actor"`
	TotalActions int    `json:"total_actions"`
}

// HourlyPicks is pick throughput for one operator in one hour bucket.
type HourlyPicks struct {
	Hour  time.Time `json:"hour"`
	Actor string    `json:"actor"`
	Count int       `json:"count"`
}

// OperatorStats is the productivity report.
type OperatorStats struct {
	Leaderboard []OperatorStat `json:"leaderboard"`
	HourlyPicks []HourlyPicks  `json:"hourly_picks"`
}
