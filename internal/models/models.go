package models

// GameMode selects how the secret words are dealt
type GameMode string

const (
	ModeClassic    GameMode = "classic"
	ModeUndercover GameMode = "undercover"
	ModeChaos      GameMode = "chaos"
)

// Valid reports whether the mode is one of the known game modes
func (m GameMode) Valid() bool {
	switch m {
	case ModeClassic, ModeUndercover, ModeChaos:
		return true
	}
	return false
}

// Role is a player's secret role for the current game
type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleImpostor   Role = "impostor"
	RoleUndercover Role = "undercover"
	RoleConfused   Role = "confused"
	// RoleMrWhite is reserved for imported data compatibility; the assigner never deals it.
	RoleMrWhite Role = "mrwhite"
)

// IsThreat reports whether eliminating this role counts as catching a bad guy
func (r Role) IsThreat() bool {
	return r == RoleImpostor || r == RoleUndercover
}

// Phase is the game progression state
type Phase string

const (
	PhaseSetup         Phase = "setup"
	PhaseRoles         Phase = "roles"
	PhaseRounds        Phase = "rounds"
	PhaseTimer         Phase = "timer"
	PhaseSelection     Phase = "selection"
	PhaseImpostorGuess Phase = "impostor-guess"
	PhaseEndgame       Phase = "endgame"
)

// Winner identifies the winning faction
type Winner string

const (
	WinnerCitizens  Winner = "citizens"
	WinnerImpostors Winner = "impostors"
)

// WordPair is a (citizen word, undercover word) tuple used by the
// undercover and confused modes
type WordPair struct {
	Citizen    string `json:"citizen"`
	Undercover string `json:"undercover"`
}

// Category is a themed pool of secret words. Built-in categories are
// read-only apart from their enabled state; custom categories are fully
// mutable and persisted.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Icon        string     `json:"icon"`
	Description string     `json:"description,omitempty"`
	IsBuiltIn   bool       `json:"is_built_in"`
	IsEnabled   bool       `json:"is_enabled"`
	Difficulty  string     `json:"difficulty"`
	Words       []string   `json:"words"`
	WordPairs   []WordPair `json:"word_pairs,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
	Version     int        `json:"version"`
}

// Player is one participant. Players persist across rounds within a game;
// eliminated players stay in the roster but leave the vote candidate pool.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	IsEliminated bool   `json:"is_eliminated"`
	HasSeenRole  bool   `json:"has_seen_role"`
}

// GameSettings is the setup configuration chosen before a game starts
type GameSettings struct {
	GameMode           GameMode `json:"game_mode"`
	IncludeConfused    bool     `json:"include_confused"`
	NumPlayers         int      `json:"num_players"`
	NumRounds          int      `json:"num_rounds"`
	DiscussionTime     int      `json:"discussion_time"` // seconds
	EnabledCategories  []string `json:"enabled_categories"`
	AllowImpostorGuess bool     `json:"allow_impostor_guess"`
	Theme              string   `json:"theme,omitempty"` // presentation only
}

// GameState is the full state of one game session. Exactly one live
// instance exists per session; it is owned by the game service.
type GameState struct {
	Settings           GameSettings `json:"settings"`
	Players            []Player     `json:"players"`
	CurrentPhase       Phase        `json:"current_phase"`
	CurrentRound       int          `json:"current_round"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	SecretWord         string       `json:"secret_word"`
	SecretWordCategory string       `json:"secret_word_category"`
	UndercoverWord     string       `json:"undercover_word,omitempty"`
	ConfusedWord       string       `json:"confused_word,omitempty"`
	SelectedPlayerID   string       `json:"selected_player_id,omitempty"`
	EliminatedPlayers  []string     `json:"eliminated_players"`
	Winner             Winner       `json:"winner,omitempty"`
	GameEnded          bool         `json:"game_ended"`

	// Discussion timer state. Zero remaining unlocks voting but never
	// advances the phase on its own.
	TimerRemaining int  `json:"timer_remaining"`
	TimerRunning   bool `json:"timer_running"`
}

// WordSelection is the outcome of the word selector for one game
type WordSelection struct {
	SecretWord     string `json:"secret_word"`
	Category       string `json:"category"`
	UndercoverWord string `json:"undercover_word,omitempty"`
	ConfusedWord   string `json:"confused_word,omitempty"`
}

// CategoryExport is a versioned snapshot of custom categories
type CategoryExport struct {
	ExportVersion string     `json:"export_version"`
	ExportedAt    string     `json:"exported_at"`
	AppVersion    string     `json:"app_version"`
	Categories    []Category `json:"categories"`
}

// ImportResult reports the outcome of importing a category snapshot
type ImportResult struct {
	Success int      `json:"success"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
