package handlers

import "github.com/impostor-party/impostor/internal/models"

// CategoryCreateRequest represents a request to create a custom category
type CategoryCreateRequest struct {
	Name        string            `json:"name"`
	Icon        string            `json:"icon"`
	Description string            `json:"description"`
	IsEnabled   bool              `json:"is_enabled"`
	Difficulty  string            `json:"difficulty"`
	Words       []string          `json:"words"`
	WordPairs   []models.WordPair `json:"word_pairs,omitempty"`
}

// CategoryUpdateRequest represents a partial category update. Absent
// fields are left unchanged.
type CategoryUpdateRequest struct {
	Name        *string           `json:"name"`
	Icon        *string           `json:"icon"`
	Description *string           `json:"description"`
	IsEnabled   *bool             `json:"is_enabled"`
	Difficulty  *string           `json:"difficulty"`
	Words       []string          `json:"words"`
	WordPairs   []models.WordPair `json:"word_pairs"`
}

// CategoryDuplicateRequest represents a request to duplicate a category
type CategoryDuplicateRequest struct {
	Name string `json:"name"`
}

// GameSettingsRequest represents a partial game settings update
type GameSettingsRequest struct {
	GameMode           *models.GameMode `json:"game_mode"`
	IncludeConfused    *bool            `json:"include_confused"`
	NumPlayers         *int             `json:"num_players"`
	NumRounds          *int             `json:"num_rounds"`
	DiscussionTime     *int             `json:"discussion_time"`
	EnabledCategories  []string         `json:"enabled_categories"`
	AllowImpostorGuess *bool            `json:"allow_impostor_guess"`
	Theme              *string          `json:"theme"`
}

// PlayerRequest represents a request to add or rename a player
type PlayerRequest struct {
	Name string `json:"name"`
}

// ConfirmRoleRequest identifies the player confirming their role reveal
type ConfirmRoleRequest struct {
	PlayerID string `json:"player_id"`
}

// VoteRequest identifies the player voted out
type VoteRequest struct {
	PlayerID string `json:"player_id"`
}

// ImpostorGuessRequest reports whether the caught impostor guessed the
// secret word
type ImpostorGuessRequest struct {
	Correct bool `json:"correct"`
}

// AppSettingsRequest represents an app-level settings update
type AppSettingsRequest struct {
	Language *string `json:"language"`
	BaseURL  *string `json:"base_url"`
}
