package services

import (
	"context"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/impostor-party/impostor/internal/logger"
	"github.com/impostor-party/impostor/internal/repository"
)

// SettingsService handles app-level settings stored in the settings table
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// Language returns the active display language, defaulting to English
func (s *SettingsService) Language(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, "language")
	if err != nil {
		return "", err
	}
	if value == "" {
		return "en", nil
	}
	return value, nil
}

// SetLanguage stores the active display language
func (s *SettingsService) SetLanguage(ctx context.Context, lang string) error {
	return s.repo.SetSetting(ctx, "language", lang)
}

// GetBaseURL returns the application base URL
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	return s.repo.GetSetting(ctx, "base_url")
}

// SetBaseURL saves the application base URL
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, "base_url", url)
}

// JoinQRImage renders the companion-screen join URL as a PNG QR code so
// phones on the same network can scan their way in
func (s *SettingsService) JoinQRImage(ctx context.Context) ([]byte, error) {
	baseURL, err := s.GetBaseURL(ctx)
	if err != nil || baseURL == "" {
		return nil, fmt.Errorf("base_url not configured")
	}

	joinURL := strings.TrimSuffix(baseURL, "/") + "/"
	return qrcode.Encode(joinURL, qrcode.Medium, 256)
}

// GetSetting retrieves an arbitrary setting
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.repo.GetSetting(ctx, key)
}

// SetSetting saves an arbitrary setting
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}
