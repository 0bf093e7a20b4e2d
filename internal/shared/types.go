package shared

// Asynq task type names shared between the API (enqueue side) and the
// worker (handler side).
const (
	TypeRunABCAnalysis          = "analytics:run_abc_analysis"
	TypeRefreshDashboardStats   = "analytics:refresh_dashboard"
	TypeGenerateReplenishment   = "replenishment:generate_tasks"
	TypeGenerateWavePlan        = "order:generate_wave_plan"
	TypeGenerateCycleCounts     = "counting:generate_sessions"
	TypeAutoReplenishPurchasing = "purchasing:auto_replenish"
)

// Queue names by priority. Operator-triggered work goes to critical,
// scheduled maintenance to low.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ABCAnalysisPayload configures one classification run. WindowDays <= 0
// means the handler default.
type ABCAnalysisPayload struct {
	WindowDays int `json:"window_days"`
}

// WavePlanPayload asks the worker to build a pick plan for a set of orders.
type WavePlanPayload struct {
	OrderIDs []string `json:"order_ids"`
	Actor    string   `json:"actor"`
}

// CycleCountPayload configures one scheduled count session.
type CycleCountPayload struct {
	AislePrefix string `json:"aisle_prefix,omitempty"`
	Limit       int    `json:"limit"`
}
