package services

import (
	"context"

	"github.com/impostor-party/impostor/internal/models"
)

// CategoryServicer defines the interface for category operations
type CategoryServicer interface {
	ListAll(ctx context.Context) ([]models.Category, error)
	ListEnabled(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, draft CategoryDraft) (*models.Category, error)
	Update(ctx context.Context, id string, update CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
	ToggleEnabled(ctx context.Context, id string) (bool, error)
	Duplicate(ctx context.Context, id, newName string) (*models.Category, error)
	Export(ctx context.Context, categoryIDs []string) (*models.CategoryExport, error)
	Import(ctx context.Context, raw []byte) (*models.ImportResult, error)
	SetBroadcaster(b Broadcaster)
}

// WordServicer defines the interface for secret-word selection
type WordServicer interface {
	SelectGameWords(ctx context.Context, mode models.GameMode, includeConfused bool) (*models.WordSelection, error)
	RandomWord(ctx context.Context) (string, string, error)
	RandomWordPair(ctx context.Context) (*PairPick, error)
	TwoRandomWordPairs(ctx context.Context) (*TwoPairPick, error)
}

// GameServicer defines the interface for game orchestration
type GameServicer interface {
	State() models.GameState
	UpdateSettings(ctx context.Context, update SettingsUpdate) (models.GameSettings, error)
	AddPlayer(ctx context.Context, name string) (*models.Player, error)
	RemovePlayer(ctx context.Context, id string) error
	UpdatePlayerName(ctx context.Context, id, name string) error
	StartGame(ctx context.Context) (models.GameState, error)
	ConfirmRoleSeen(ctx context.Context, playerID string) (models.GameState, error)
	AdvanceRound(ctx context.Context) (models.GameState, error)
	StartDiscussion(ctx context.Context) (models.GameState, error)
	CompleteDiscussion(ctx context.Context) (models.GameState, error)
	CastVote(ctx context.Context, playerID string) (models.GameState, error)
	ResolveImpostorGuess(ctx context.Context, correct bool) (models.GameState, error)
	ResetGame(ctx context.Context) (models.GameState, error)
	PlayAgain(ctx context.Context) (models.GameState, error)
	PauseTimer() models.GameState
	ResumeTimer() models.GameState
	TickTimer() (models.GameState, bool)
	SetBroadcaster(b Broadcaster)
}

// SettingsServicer defines the interface for app-level settings
type SettingsServicer interface {
	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, lang string) error
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	JoinQRImage(ctx context.Context) ([]byte, error)
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

var (
	_ CategoryServicer = (*CategoryService)(nil)
	_ WordServicer     = (*WordService)(nil)
	_ GameServicer     = (*GameService)(nil)
	_ SettingsServicer = (*SettingsService)(nil)
)

// Broadcaster defines the interface for pushing updates to connected clients
type Broadcaster interface {
	BroadcastGameState(state models.GameState)
	BroadcastTimerTick(remaining int)
	BroadcastTimerDone()
	BroadcastCategoriesChanged()
}
