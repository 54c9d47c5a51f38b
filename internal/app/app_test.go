package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/impostor-party/impostor/internal/logger"
)

func createTestTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<html><body>Impostor!</body></html>")},
	}
}

func createTestApp(t *testing.T) *App {
	t.Helper()
	app, err := New(logger.New(), ":memory:", createTestTemplatesFS(), fstest.MapFS{})
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func TestNew_InitializesApp(t *testing.T) {
	app := createTestApp(t)

	if app.handlers == nil {
		t.Error("expected handlers to be initialized")
	}
	if app.repo == nil {
		t.Error("expected repo to be initialized")
	}
	if app.cancelTicker == nil {
		t.Error("expected cancelTicker to be set")
	}
}

func TestNew_FailsWithBadDBPath(t *testing.T) {
	_, err := New(logger.New(), "/nonexistent/path/db.sqlite", createTestTemplatesFS(), fstest.MapFS{})
	if err == nil {
		t.Error("expected error for invalid db path")
	}
}

func TestNew_FailsWithMissingTemplates(t *testing.T) {
	_, err := New(logger.New(), ":memory:", fstest.MapFS{}, fstest.MapFS{})
	if err == nil {
		t.Error("expected error for missing templates")
	}
}

func TestApp_Router_ServesRequests(t *testing.T) {
	app := createTestApp(t)
	server := httptest.NewServer(app.Router())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/game")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for /api/game, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/api/categories")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for /api/categories, got %d", resp.StatusCode)
	}
}

func TestApp_Close_StopsTicker(t *testing.T) {
	app := createTestApp(t)

	// Close should not panic, and calling it twice should be safe
	app.Close()
	app.Close()
}

func TestGetPreferredIP_ReturnsValidIP(t *testing.T) {
	ip := getPreferredIP(realNetworkProvider{})

	if ip == "" {
		t.Error("expected non-empty IP")
	}
	if ip != "localhost" {
		if parsed := net.ParseIP(ip); parsed == nil {
			t.Errorf("expected valid IP, got: %s", ip)
		}
	}
}

func TestIsPrivate172(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"192.168.1.1", false},
		{"10.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			result := isPrivate172(net.ParseIP(tt.ip))
			if result != tt.expected {
				t.Errorf("isPrivate172(%s) = %v, want %v", tt.ip, result, tt.expected)
			}
		})
	}

	if isPrivate172(nil) {
		t.Error("isPrivate172(nil) = true, want false")
	}
	if isPrivate172(net.ParseIP("fe80::1")) {
		t.Error("isPrivate172(fe80::1) = true, want false")
	}
}

func TestSetDefaultBaseURL_SetsWhenEmpty(t *testing.T) {
	app := createTestApp(t)
	ctx := context.Background()

	app.setDefaultBaseURL("http://192.168.1.100:8080")

	val, err := app.repo.GetSetting(ctx, "base_url")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if val != "http://192.168.1.100:8080" {
		t.Errorf("expected base_url to be set, got: %s", val)
	}
}

func TestSetDefaultBaseURL_ReplacesLocalhost(t *testing.T) {
	app := createTestApp(t)
	ctx := context.Background()

	if err := app.repo.SetSetting(ctx, "base_url", "http://localhost:8080"); err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}
	app.setDefaultBaseURL("http://192.168.1.100:8080")

	val, _ := app.repo.GetSetting(ctx, "base_url")
	if val != "http://192.168.1.100:8080" {
		t.Errorf("expected localhost base_url to be replaced, got: %s", val)
	}
}

func TestSetDefaultBaseURL_KeepsCustomValue(t *testing.T) {
	app := createTestApp(t)
	ctx := context.Background()

	if err := app.repo.SetSetting(ctx, "base_url", "http://party.example.com"); err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}
	app.setDefaultBaseURL("http://192.168.1.100:8080")

	val, _ := app.repo.GetSetting(ctx, "base_url")
	if val != "http://party.example.com" {
		t.Errorf("expected custom base_url to survive, got: %s", val)
	}
}
