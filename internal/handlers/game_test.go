package handlers_test

import (
	"net/http"
	"testing"

	"github.com/impostor-party/impostor/internal/models"
)

// builtinCategoryIDs mirror the shipped catalog
var builtinCategoryIDs = []string{"animals", "food", "places", "professions", "sports", "movies"}

// gameState fetches the current state over the API
func (ts *testSetup) gameState(t *testing.T) models.GameState {
	t.Helper()
	rec := ts.do(t, http.MethodGet, "/api/game", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to fetch game state: status %d", rec.Code)
	}
	var state models.GameState
	decode(t, rec, &state)
	return state
}

// revealAllRoles confirms the role reveal for every player in turn order
func (ts *testSetup) revealAllRoles(t *testing.T) {
	t.Helper()
	for {
		state := ts.gameState(t)
		if state.CurrentPhase != models.PhaseRoles {
			return
		}
		current := state.Players[state.CurrentPlayerIndex]
		rec := ts.do(t, http.MethodPost, "/api/game/confirm-role", map[string]string{"player_id": current.ID})
		if rec.Code != http.StatusOK {
			t.Fatalf("failed to confirm role for %s: status %d", current.ID, rec.Code)
		}
	}
}

// playToSelection drives a freshly started game into the voting phase
func (ts *testSetup) playToSelection(t *testing.T) models.GameState {
	t.Helper()
	ts.revealAllRoles(t)
	if rec := ts.do(t, http.MethodPost, "/api/game/start-discussion", nil); rec.Code != http.StatusOK {
		t.Fatalf("failed to start discussion: status %d", rec.Code)
	}
	rec := ts.do(t, http.MethodPost, "/api/game/complete-discussion", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to complete discussion: status %d", rec.Code)
	}
	var state models.GameState
	decode(t, rec, &state)
	return state
}

func findPlayerByRole(state models.GameState, role models.Role) *models.Player {
	for i := range state.Players {
		if state.Players[i].Role == role {
			return &state.Players[i]
		}
	}
	return nil
}

func TestHandleGetGameState_Defaults(t *testing.T) {
	setup := newTestSetup(t)

	state := setup.gameState(t)

	if state.CurrentPhase != models.PhaseSetup {
		t.Errorf("expected setup phase, got %q", state.CurrentPhase)
	}
	if state.Settings.GameMode != models.ModeClassic {
		t.Errorf("expected classic mode, got %q", state.Settings.GameMode)
	}
	if state.Settings.DiscussionTime != 120 {
		t.Errorf("expected 120s discussion time, got %d", state.Settings.DiscussionTime)
	}
	if !state.Settings.AllowImpostorGuess {
		t.Error("expected impostor guess enabled by default")
	}
}

func TestHandleUpdateGameSettings_Success(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPut, "/api/game/settings", map[string]interface{}{
		"game_mode":       "undercover",
		"discussion_time": 300,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var settings models.GameSettings
	decode(t, rec, &settings)

	if settings.GameMode != models.ModeUndercover {
		t.Errorf("expected undercover mode, got %q", settings.GameMode)
	}
	if settings.DiscussionTime != 300 {
		t.Errorf("expected 300s discussion time, got %d", settings.DiscussionTime)
	}
}

func TestHandleUpdateGameSettings_InvalidMode(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPut, "/api/game/settings", map[string]interface{}{
		"game_mode": "speedrun",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var apiErr map[string]interface{}
	decode(t, rec, &apiErr)
	if apiErr["code"] != "VALIDATION_ERROR" {
		t.Errorf("expected code VALIDATION_ERROR, got %v", apiErr["code"])
	}
}

func TestHandleStartGame_Success(t *testing.T) {
	setup := newTestSetup(t)
	setup.addPlayers(t, 4)

	rec := setup.do(t, http.MethodPost, "/api/game/start", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var state models.GameState
	decode(t, rec, &state)

	if state.CurrentPhase != models.PhaseRoles {
		t.Errorf("expected roles phase, got %q", state.CurrentPhase)
	}
	if state.SecretWord == "" {
		t.Error("expected a secret word to be selected")
	}

	impostors := 0
	for _, p := range state.Players {
		if p.Role == models.RoleImpostor {
			impostors++
		}
	}
	if impostors != 1 {
		t.Errorf("expected exactly 1 impostor in classic mode, got %d", impostors)
	}
}

func TestHandleStartGame_TooFewPlayers(t *testing.T) {
	setup := newTestSetup(t)
	setup.addPlayers(t, 2)

	rec := setup.do(t, http.MethodPost, "/api/game/start", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var apiErr map[string]interface{}
	decode(t, rec, &apiErr)
	if apiErr["code"] != "VALIDATION_ERROR" {
		t.Errorf("expected code VALIDATION_ERROR, got %v", apiErr["code"])
	}
}

func TestHandleStartGame_AlreadyRunning(t *testing.T) {
	setup := newTestSetup(t)
	setup.addPlayers(t, 3)

	if rec := setup.do(t, http.MethodPost, "/api/game/start", nil); rec.Code != http.StatusOK {
		t.Fatalf("first start failed: status %d", rec.Code)
	}

	rec := setup.do(t, http.MethodPost, "/api/game/start", nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var apiErr map[string]interface{}
	decode(t, rec, &apiErr)
	if apiErr["code"] != "CONFLICT" {
		t.Errorf("expected code CONFLICT, got %v", apiErr["code"])
	}
}

func TestHandleStartGame_NoEnabledCategories(t *testing.T) {
	setup := newTestSetup(t)
	setup.addPlayers(t, 3)

	for _, id := range builtinCategoryIDs {
		rec := setup.do(t, http.MethodPost, "/api/categories/"+id+"/toggle", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed to disable category %s: status %d", id, rec.Code)
		}
	}

	rec := setup.do(t, http.MethodPost, "/api/game/start", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var apiErr map[string]interface{}
	decode(t, rec, &apiErr)
	if apiErr["code"] != "NO_WORDS" {
		t.Errorf("expected code NO_WORDS, got %v", apiErr["code"])
	}

	// The failed start must not deal roles
	state := setup.gameState(t)
	if state.CurrentPhase != models.PhaseSetup {
		t.Errorf("expected game still in setup, got %q", state.CurrentPhase)
	}
}

func TestHandleConfirmRole_OutOfPhase(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/game/confirm-role", map[string]string{"player_id": "x"})

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}

func TestHandleVote_InnocentEliminated_ImpostorsWin(t *testing.T) {
	setup := newTestSetup(t)
	setup.addPlayers(t, 4)

	if rec := setup.do(t, http.MethodPost, "/api/game/start", nil); rec.Code != http.StatusOK {
		t.Fatalf("start failed: status %d", rec.Code)
	}
	state := setup.playToSelection(t)

	citizen := findPlayerByRole(state, models.RoleCitizen)
	if citizen == nil {
		t.Fatal("expected at least one citizen")
	}

	rec := setup.do(t, http.MethodPost, "/api/game/vote", map[string]string{"player_id": citizen.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("vote failed: status %d: %s", rec.Code, rec.Body.String())
	}

	decode(t, rec, &state)

	if state.CurrentPhase != models.PhaseEndgame {
		t.Errorf("expected endgame, got %q", state.CurrentPhase)
	}
	if state.Winner != models.WinnerImpostors {
		t.Errorf("expected impostors to win, got %q", state.Winner)
	}
	if !state.GameEnded {
		t.Error("expected game_ended flag")
	}
}

func TestHandleVote_ImpostorCaught_GuessFlow(t *testing.T) {
	setup := newTestSetup(t)
	setup.addPlayers(t, 4)

	if rec := setup.do(t, http.MethodPost, "/api/game/start", nil); rec.Code != http.StatusOK {
		t.Fatalf("start failed: status %d", rec.Code)
	}
	state := setup.playToSelection(t)

	impostor := findPlayerByRole(state, models.RoleImpostor)
	if impostor == nil {
		t.Fatal("expected one impostor")
	}

	rec := setup.do(t, http.MethodPost, "/api/game/vote", map[string]string{"player_id": impostor.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("vote failed: status %d", rec.Code)
	}
	decode(t, rec, &state)

	if state.CurrentPhase != models.PhaseImpostorGuess {
		t.Fatalf("expected impostor-guess phase, got %q", state.CurrentPhase)
	}

	rec = setup.do(t, http.MethodPost, "/api/game/impostor-guess", map[string]bool{"correct": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("guess resolution failed: status %d", rec.Code)
	}
	decode(t, rec, &state)

	if state.CurrentPhase != models.PhaseEndgame {
		t.Errorf("expected endgame, got %q", state.CurrentPhase)
	}
	if state.Winner != models.WinnerCitizens {
		t.Errorf("expected citizens to win after wrong guess, got %q", state.Winner)
	}
}

func TestHandleVote_OutOfPhase(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/game/vote", map[string]string{"player_id": "x"})

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}

func TestHandleTimerPauseResume(t *testing.T) {
	setup := newTestSetup(t)
	setup.addPlayers(t, 3)

	if rec := setup.do(t, http.MethodPost, "/api/game/start", nil); rec.Code != http.StatusOK {
		t.Fatalf("start failed: status %d", rec.Code)
	}
	setup.revealAllRoles(t)
	if rec := setup.do(t, http.MethodPost, "/api/game/start-discussion", nil); rec.Code != http.StatusOK {
		t.Fatalf("start-discussion failed: status %d", rec.Code)
	}

	rec := setup.do(t, http.MethodPost, "/api/game/timer/pause", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pause failed: status %d", rec.Code)
	}
	var state models.GameState
	decode(t, rec, &state)
	if state.TimerRunning {
		t.Error("expected timer paused")
	}

	rec = setup.do(t, http.MethodPost, "/api/game/timer/resume", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("resume failed: status %d", rec.Code)
	}
	decode(t, rec, &state)
	if !state.TimerRunning {
		t.Error("expected timer running after resume")
	}
}

func TestHandleResetGame_ReturnsToSetup(t *testing.T) {
	setup := newTestSetup(t)
	setup.addPlayers(t, 3)

	if rec := setup.do(t, http.MethodPost, "/api/game/start", nil); rec.Code != http.StatusOK {
		t.Fatalf("start failed: status %d", rec.Code)
	}

	rec := setup.do(t, http.MethodPost, "/api/game/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset failed: status %d", rec.Code)
	}

	var state models.GameState
	decode(t, rec, &state)

	if state.CurrentPhase != models.PhaseSetup {
		t.Errorf("expected setup phase, got %q", state.CurrentPhase)
	}
	if len(state.Players) != 3 {
		t.Errorf("expected roster to survive reset, got %d players", len(state.Players))
	}
	if state.SecretWord != "" {
		t.Error("expected secret word cleared")
	}
}

func TestHandlePlayAgain_FromEndgame(t *testing.T) {
	setup := newTestSetup(t)
	setup.addPlayers(t, 4)

	if rec := setup.do(t, http.MethodPost, "/api/game/start", nil); rec.Code != http.StatusOK {
		t.Fatalf("start failed: status %d", rec.Code)
	}
	state := setup.playToSelection(t)

	citizen := findPlayerByRole(state, models.RoleCitizen)
	if rec := setup.do(t, http.MethodPost, "/api/game/vote", map[string]string{"player_id": citizen.ID}); rec.Code != http.StatusOK {
		t.Fatalf("vote failed: status %d", rec.Code)
	}

	rec := setup.do(t, http.MethodPost, "/api/game/play-again", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("play-again failed: status %d: %s", rec.Code, rec.Body.String())
	}

	decode(t, rec, &state)
	if state.CurrentPhase != models.PhaseRoles {
		t.Errorf("expected a fresh game in roles phase, got %q", state.CurrentPhase)
	}
	if len(state.EliminatedPlayers) != 0 {
		t.Errorf("expected eliminations cleared, got %v", state.EliminatedPlayers)
	}
}

func TestHandlePlayAgain_FromSetup(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/game/play-again", nil)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}
