package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/impostor-party/impostor/internal/services"
	"github.com/impostor-party/impostor/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// Templates holds all parsed HTML templates
type Templates struct {
	Index *template.Template
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Category     services.CategoryServicer
	Game         services.GameServicer
	Settings     services.SettingsServicer
	Hub          *websocket.Hub
	Log          HTTPLogger
	templates    *Templates
	staticServer http.Handler
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	category services.CategoryServicer,
	game services.GameServicer,
	settings services.SettingsServicer,
	templatesFS fs.FS,
	staticServer http.Handler,
	hub *websocket.Hub,
	log HTTPLogger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		Category:     category,
		Game:         game,
		Settings:     settings,
		Hub:          hub,
		Log:          log,
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without templates or a hub
// (for testing API endpoints)
func NewForTesting(
	category services.CategoryServicer,
	game services.GameServicer,
	settings services.SettingsServicer,
) *Handlers {
	return &Handlers{
		Category: category,
		Game:     game,
		Settings: settings,
		Log:      NoopHTTPLogger{},
		// templates left nil - API endpoints don't use templates
	}
}

// loadTemplates parses all templates once at startup
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Index, err = template.ParseFS(templatesFS, "index.html"); err != nil {
		return nil, fmt.Errorf("index template: %w", err)
	}

	return t, nil
}
