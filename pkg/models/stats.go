package models

// DashboardStats is the derived productivity snapshot. It is recomputed on
// every request and never stored.
type DashboardStats struct {
	ActiveAutomations int     `json:"active_automations"`
	TotalAutomations  int     `json:"total_automations"`
	TasksRun          int64   `json:"tasks_run"`
	HoursSaved        float64 `json:"hours_saved"`
	ProductivityValue float64 `json:"productivity_value"`
}
