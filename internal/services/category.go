package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/impostor-party/impostor/internal/catalog"
	"github.com/impostor-party/impostor/internal/errors"
	"github.com/impostor-party/impostor/internal/logger"
	"github.com/impostor-party/impostor/internal/models"
	"github.com/impostor-party/impostor/internal/repository"
)

const exportVersion = "1.0"

// appVersion is stamped into export snapshots
var appVersion = "1.0.0"

// CategoryService merges the built-in catalog with user-defined categories
// and handles category-related business logic
type CategoryService struct {
	log         logger.Logger
	repo        repository.CategoryRepository
	catalog     *catalog.Catalog
	settings    SettingsServicer
	broadcaster Broadcaster
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(log logger.Logger, repo repository.CategoryRepository, cat *catalog.Catalog, settings SettingsServicer) *CategoryService {
	return &CategoryService{log: log, repo: repo, catalog: cat, settings: settings}
}

// SetBroadcaster sets the broadcaster for pushing category changes to clients
func (s *CategoryService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CategoryDraft holds the fields a caller supplies when creating a category
type CategoryDraft struct {
	Name        string
	Icon        string
	Description string
	IsEnabled   bool
	Difficulty  string
	Words       []string
	WordPairs   []models.WordPair
}

// CategoryUpdate holds the fields of a partial category update. Nil fields
// are left unchanged.
type CategoryUpdate struct {
	Name        *string
	Icon        *string
	Description *string
	IsEnabled   *bool
	Difficulty  *string
	Words       []string
	WordPairs   []models.WordPair
}

// ListAll returns built-in categories (localized for the active language,
// with stored enablement overrides applied) followed by custom categories
func (s *CategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	lang, err := s.settings.Language(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := s.repo.GetBuiltInOverrides(ctx)
	if err != nil {
		return nil, err
	}

	builtIn := s.catalog.Categories(lang)
	for i := range builtIn {
		if enabled, ok := overrides[builtIn[i].ID]; ok {
			builtIn[i].IsEnabled = enabled
		}
	}

	custom, err := s.repo.ListCustomCategories(ctx)
	if err != nil {
		return nil, err
	}

	return append(builtIn, custom...), nil
}

// ListEnabled returns the subsequence of ListAll with IsEnabled set
func (s *CategoryService) ListEnabled(ctx context.Context) ([]models.Category, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	enabled := make([]models.Category, 0, len(all))
	for _, cat := range all {
		if cat.IsEnabled {
			enabled = append(enabled, cat)
		}
	}
	return enabled, nil
}

// Get returns a single category (built-in or custom) by id
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, errors.NotFoundf("category %q not found", id)
}

// Create validates and stores a new custom category
func (s *CategoryService) Create(ctx context.Context, draft CategoryDraft) (*models.Category, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, errors.Validation("category name is required")
	}
	if len(draft.Words) == 0 {
		return nil, errors.Validation("category must have at least one word")
	}

	now := repository.Now()
	cat := models.Category{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Icon:        draft.Icon,
		Description: draft.Description,
		IsBuiltIn:   false,
		IsEnabled:   draft.IsEnabled,
		Difficulty:  draft.Difficulty,
		Words:       draft.Words,
		WordPairs:   draft.WordPairs,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
	if cat.Icon == "" {
		cat.Icon = "📦"
	}
	if cat.Difficulty == "" {
		cat.Difficulty = "medium"
	}

	if err := s.repo.CreateCustomCategory(ctx, cat); err != nil {
		return nil, err
	}

	s.log.Info("Custom category created", "id", cat.ID, "name", cat.Name)
	s.notifyChanged()
	return &cat, nil
}

// Update merges the given fields into a custom category, bumping its
// version. Built-in ids are read-only and report NotFound.
func (s *CategoryService) Update(ctx context.Context, id string, update CategoryUpdate) (*models.Category, error) {
	if s.catalog.Has(id) {
		return nil, errors.NotFoundf("category %q is read-only", id)
	}

	cat, err := s.repo.GetCustomCategory(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("category %q not found", id)
		}
		return nil, err
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, errors.Validation("category name is required")
		}
		cat.Name = *update.Name
	}
	if update.Icon != nil {
		cat.Icon = *update.Icon
	}
	if update.Description != nil {
		cat.Description = *update.Description
	}
	if update.IsEnabled != nil {
		cat.IsEnabled = *update.IsEnabled
	}
	if update.Difficulty != nil {
		cat.Difficulty = *update.Difficulty
	}
	if update.Words != nil {
		if len(update.Words) == 0 {
			return nil, errors.Validation("category must have at least one word")
		}
		cat.Words = update.Words
	}
	if update.WordPairs != nil {
		cat.WordPairs = update.WordPairs
	}

	cat.Version++
	cat.UpdatedAt = repository.Now()

	if err := s.repo.UpdateCustomCategory(ctx, *cat); err != nil {
		return nil, err
	}

	s.notifyChanged()
	return cat, nil
}

// Delete removes a custom category. Returns false for unknown or built-in
// ids.
func (s *CategoryService) Delete(ctx context.Context, id string) (bool, error) {
	if s.catalog.Has(id) {
		return false, nil
	}

	deleted, err := s.repo.DeleteCustomCategory(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("Custom category deleted", "id", id)
		s.notifyChanged()
	}
	return deleted, nil
}

// ToggleEnabled flips a category's enabled state and returns the new
// state. Built-in categories store the flip in the override map.
func (s *CategoryService) ToggleEnabled(ctx context.Context, id string) (bool, error) {
	if s.catalog.Has(id) {
		overrides, err := s.repo.GetBuiltInOverrides(ctx)
		if err != nil {
			return false, err
		}
		current := true
		if v, ok := overrides[id]; ok {
			current = v
		}
		newState := !current
		if err := s.repo.SetBuiltInOverride(ctx, id, newState); err != nil {
			return false, err
		}
		s.notifyChanged()
		return newState, nil
	}

	cat, err := s.repo.GetCustomCategory(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return false, errors.NotFoundf("category %q not found", id)
		}
		return false, err
	}

	cat.IsEnabled = !cat.IsEnabled
	cat.UpdatedAt = repository.Now()
	if err := s.repo.UpdateCustomCategory(ctx, *cat); err != nil {
		return false, err
	}
	s.notifyChanged()
	return cat.IsEnabled, nil
}

// Duplicate copies a category (built-in or custom) into a new disabled
// custom category
func (s *CategoryService) Duplicate(ctx context.Context, id, newName string) (*models.Category, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := newName
	if name == "" {
		name = source.Name + " (Copy)"
	}

	words := make([]string, len(source.Words))
	copy(words, source.Words)
	var pairs []models.WordPair
	if len(source.WordPairs) > 0 {
		pairs = make([]models.WordPair, len(source.WordPairs))
		copy(pairs, source.WordPairs)
	}

	return s.Create(ctx, CategoryDraft{
		Name:        name,
		Icon:        source.Icon,
		Description: source.Description,
		IsEnabled:   false,
		Difficulty:  source.Difficulty,
		Words:       words,
		WordPairs:   pairs,
	})
}

// Export bundles custom categories into a versioned snapshot. A nil or
// empty id list exports everything.
func (s *CategoryService) Export(ctx context.Context, categoryIDs []string) (*models.CategoryExport, error) {
	custom, err := s.repo.ListCustomCategories(ctx)
	if err != nil {
		return nil, err
	}

	categories := custom
	if len(categoryIDs) > 0 {
		wanted := make(map[string]bool, len(categoryIDs))
		for _, id := range categoryIDs {
			wanted[id] = true
		}
		categories = categories[:0:0]
		for _, cat := range custom {
			if wanted[cat.ID] {
				categories = append(categories, cat)
			}
		}
	}
	if categories == nil {
		categories = []models.Category{}
	}

	return &models.CategoryExport{
		ExportVersion: exportVersion,
		ExportedAt:    repository.Now(),
		AppVersion:    appVersion,
		Categories:    categories,
	}, nil
}

// Import parses a snapshot and creates its categories. Name collisions
// with existing custom categories (case-insensitive) are skipped; entries
// with an empty name or word list are reported as errors; everything else
// is created disabled. Malformed input yields a soft failure, never an
// error.
func (s *CategoryService) Import(ctx context.Context, raw []byte) (*models.ImportResult, error) {
	var bundle models.CategoryExport
	if err := json.Unmarshal(raw, &bundle); err != nil {
		s.log.Warn("Rejected malformed category snapshot", "error", err)
		return &models.ImportResult{Errors: []string{"invalid or corrupted file"}}, nil
	}

	result := &models.ImportResult{Errors: []string{}}

	for _, cat := range bundle.Categories {
		if cat.Name != "" {
			exists, err := s.repo.CustomCategoryExistsByName(ctx, cat.Name)
			if err != nil {
				return nil, err
			}
			if exists {
				result.Skipped++
				continue
			}
		}

		if cat.Name == "" || len(cat.Words) == 0 {
			name := cat.Name
			if name == "" {
				name = "unnamed"
			}
			result.Errors = append(result.Errors, "invalid category: "+name)
			continue
		}

		icon := cat.Icon
		if icon == "" {
			icon = "📦"
		}
		difficulty := cat.Difficulty
		if difficulty == "" {
			difficulty = "medium"
		}

		if _, err := s.Create(ctx, CategoryDraft{
			Name:        cat.Name,
			Icon:        icon,
			Description: cat.Description,
			IsEnabled:   false,
			Difficulty:  difficulty,
			Words:       cat.Words,
			WordPairs:   cat.WordPairs,
		}); err != nil {
			result.Errors = append(result.Errors, "failed to import "+cat.Name+": "+err.Error())
			continue
		}

		result.Success++
	}

	s.log.Info("Category import finished",
		"success", result.Success,
		"skipped", result.Skipped,
		"errors", len(result.Errors))

	return result, nil
}

func (s *CategoryService) notifyChanged() {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastCategoriesChanged()
	}
}
