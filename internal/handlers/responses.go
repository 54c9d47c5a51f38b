package handlers

// ToggleResponse is the response for category enable/disable toggles
type ToggleResponse struct {
	ID        string `json:"id"`
	IsEnabled bool   `json:"is_enabled"`
}

// SettingsResponse is the response for app-level settings
type SettingsResponse struct {
	Language string `json:"language"`
	BaseURL  string `json:"base_url"`
}
