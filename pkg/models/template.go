package models

// Template is an immutable predefined automation blueprint. Templates are
// loaded once at startup and never mutated.
type Template struct {
	ID               string `json:"id"                 yaml:"id"`
	Name             string `json:"name"               yaml:"name"`
	Description      string `json:"description"        yaml:"description"`
	Category         string `json:"category"           yaml:"category"`
	Icon             string `json:"icon"               yaml:"icon"`
	Trigger          string `json:"trigger"            yaml:"trigger"`
	Action           string `json:"action"             yaml:"action"`
	TimeSavedMinutes int    `json:"time_saved_minutes" yaml:"time_saved_minutes"`
}
