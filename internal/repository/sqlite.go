package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/impostor-party/impostor/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// NewWithDB wraps an existing database handle (used by sqlmock tests)
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying database connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS custom_categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT,
			description TEXT,
			is_enabled BOOLEAN NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT 'medium',
			words TEXT NOT NULL,
			word_pairs TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS builtin_states (
			category_id TEXT PRIMARY KEY,
			enabled BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_custom_categories_name ON custom_categories(name)`,
		`CREATE INDEX IF NOT EXISTS idx_players_position ON players(position)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Category Methods ====================

// ListCustomCategories returns all user-defined categories in creation order
func (r *Repository) ListCustomCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, icon, description, is_enabled, difficulty, words, word_pairs, created_at, updated_at, version
		FROM custom_categories
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}
	return categories, rows.Err()
}

// GetCustomCategory retrieves a custom category by id
func (r *Repository) GetCustomCategory(ctx context.Context, id string) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, icon, description, is_enabled, difficulty, words, word_pairs, created_at, updated_at, version
		FROM custom_categories
		WHERE id = ?
	`, id)

	cat, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(s scanner) (*models.Category, error) {
	var cat models.Category
	var icon, description, wordsJSON sql.NullString
	var pairsJSON sql.NullString

	err := s.Scan(&cat.ID, &cat.Name, &icon, &description, &cat.IsEnabled,
		&cat.Difficulty, &wordsJSON, &pairsJSON, &cat.CreatedAt, &cat.UpdatedAt, &cat.Version)
	if err != nil {
		return nil, err
	}

	cat.Icon = icon.String
	cat.Description = description.String
	if wordsJSON.Valid && wordsJSON.String != "" {
		if err := json.Unmarshal([]byte(wordsJSON.String), &cat.Words); err != nil {
			return nil, err
		}
	}
	if pairsJSON.Valid && pairsJSON.String != "" {
		if err := json.Unmarshal([]byte(pairsJSON.String), &cat.WordPairs); err != nil {
			return nil, err
		}
	}
	return &cat, nil
}

// CreateCustomCategory inserts a fully-populated custom category record
func (r *Repository) CreateCustomCategory(ctx context.Context, cat models.Category) error {
	wordsJSON, err := json.Marshal(cat.Words)
	if err != nil {
		return err
	}
	pairsJSON, err := marshalPairs(cat.WordPairs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO custom_categories (id, name, icon, description, is_enabled, difficulty, words, word_pairs, created_at, updated_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, cat.ID, cat.Name, cat.Icon, cat.Description, cat.IsEnabled, cat.Difficulty,
		string(wordsJSON), pairsJSON, cat.CreatedAt, cat.UpdatedAt, cat.Version)
	return err
}

// UpdateCustomCategory replaces the stored record for cat.ID
func (r *Repository) UpdateCustomCategory(ctx context.Context, cat models.Category) error {
	wordsJSON, err := json.Marshal(cat.Words)
	if err != nil {
		return err
	}
	pairsJSON, err := marshalPairs(cat.WordPairs)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE custom_categories
		SET name = ?, icon = ?, description = ?, is_enabled = ?, difficulty = ?, words = ?, word_pairs = ?, updated_at = ?, version = ?
		WHERE id = ?
	`, cat.Name, cat.Icon, cat.Description, cat.IsEnabled, cat.Difficulty,
		string(wordsJSON), pairsJSON, cat.UpdatedAt, cat.Version, cat.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCustomCategory removes a custom category; returns false when the
// id does not exist
func (r *Repository) DeleteCustomCategory(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM custom_categories WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CustomCategoryExistsByName reports whether a custom category with the
// given name exists (case-insensitive)
func (r *Repository) CustomCategoryExistsByName(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM custom_categories WHERE LOWER(name) = LOWER(?)`, name,
	).Scan(&count)
	return count > 0, err
}

func marshalPairs(pairs []models.WordPair) (interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(pairs)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// ==================== Built-in Override Methods ====================

// GetBuiltInOverrides returns the enablement override map for built-in
// categories. Categories absent from the map default to enabled.
func (r *Repository) GetBuiltInOverrides(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category_id, enabled FROM builtin_states`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make(map[string]bool)
	for rows.Next() {
		var id string
		var enabled bool
		if err := rows.Scan(&id, &enabled); err != nil {
			return nil, err
		}
		overrides[id] = enabled
	}
	return overrides, rows.Err()
}

// SetBuiltInOverride stores the enablement override for a built-in category
func (r *Repository) SetBuiltInOverride(ctx context.Context, id string, enabled bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO builtin_states (category_id, enabled) VALUES (?, ?)
		ON CONFLICT(category_id) DO UPDATE SET enabled = excluded.enabled
	`, id, enabled)
	return err
}

// ==================== Roster Methods ====================

// ListPlayers returns the persisted roster in turn order. Only id and
// name are stored; roles and elimination state never survive a restart.
func (r *Repository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM players ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		p.Role = models.RoleCitizen
		players = append(players, p)
	}
	return players, rows.Err()
}

// SaveRoster replaces the persisted roster with the given players,
// preserving their order
func (r *Repository) SaveRoster(ctx context.Context, players []models.Player) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return err
	}
	for i, p := range players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players (id, name, position) VALUES (?, ?, ?)`,
			p.ID, p.Name, i,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ==================== Settings Methods ====================

const gameSettingsKey = "game_settings"

// GetSetting retrieves a setting value by key
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting stores a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// GetGameSettings retrieves the persisted game settings, or nil if none
// have been saved yet
func (r *Repository) GetGameSettings(ctx context.Context) (*models.GameSettings, error) {
	raw, err := r.GetSetting(ctx, gameSettingsKey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var settings models.GameSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveGameSettings persists the game settings as a JSON blob
func (r *Repository) SaveGameSettings(ctx context.Context, settings models.GameSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return r.SetSetting(ctx, gameSettingsKey, string(raw))
}

// Now returns the current time formatted the way category timestamps are
// stored
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
