package repository

import (
	"context"

	"github.com/impostor-party/impostor/internal/models"
)

// CategoryRepository defines persistence for custom categories and the
// built-in enablement override map
type CategoryRepository interface {
	ListCustomCategories(ctx context.Context) ([]models.Category, error)
	GetCustomCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCustomCategory(ctx context.Context, cat models.Category) error
	UpdateCustomCategory(ctx context.Context, cat models.Category) error
	DeleteCustomCategory(ctx context.Context, id string) (bool, error)
	CustomCategoryExistsByName(ctx context.Context, name string) (bool, error)

	GetBuiltInOverrides(ctx context.Context) (map[string]bool, error)
	SetBuiltInOverride(ctx context.Context, id string, enabled bool) error
}

// RosterRepository defines persistence for the player roster. Only
// identity and naming survive restarts; roles and elimination state do not.
type RosterRepository interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	SaveRoster(ctx context.Context, players []models.Player) error
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	GetGameSettings(ctx context.Context) (*models.GameSettings, error)
	SaveGameSettings(ctx context.Context, settings models.GameSettings) error
}

// FullRepository combines all repository interfaces.
// Use this when a service needs access to multiple domains.
type FullRepository interface {
	CategoryRepository
	RosterRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
