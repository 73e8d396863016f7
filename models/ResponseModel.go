package models

// ErrorResponse is the error body returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is the generic success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ImportResult reports the outcome of a CSV import.
type ImportResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Count   int    `json:"count"`
}

// RefreshReport describes one RefreshAll run: which tables loaded, which
// failed, and the recorded sync timestamp.
type RefreshReport struct {
	LastSync string            `json:"lastSync"`
	Loaded   []string          `json:"loaded"`
	Failed   map[string]string `json:"failed,omitempty"`
}

// DashboardSummary aggregates the counters the dashboard cards show.
type DashboardSummary struct {
	Tasks               int `json:"tasks"`
	PendingTasks        int `json:"pendingTasks"`
	PendingHighCritical int `json:"pendingHighCritical"`
	Visits              int `json:"visits"`
	PendingVisits       int `json:"pendingVisits"`
	PaintingProjects    int `json:"paintingProjects"`
	Purchases           int `json:"purchases"`
	PendingPurchases    int `json:"pendingPurchases"`
	ThirdPartyContracts int `json:"thirdPartyContracts"`
	ActiveWorks         int `json:"activeWorks"`
}
