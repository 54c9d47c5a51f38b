package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/impostor-party/impostor/internal/errors"
	"github.com/impostor-party/impostor/internal/logger"
	"github.com/impostor-party/impostor/internal/models"
)

// Roster size limits
const (
	MinPlayers = 3
	MaxPlayers = 15
)

// Discussion time bounds in seconds
const (
	MinDiscussionTime = 10
	MaxDiscussionTime = 600
)

// GameRepository defines the persistence methods needed by GameService
type GameRepository interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	SaveRoster(ctx context.Context, players []models.Player) error
	GetGameSettings(ctx context.Context) (*models.GameSettings, error)
	SaveGameSettings(ctx context.Context, settings models.GameSettings) error
}

// GameService owns the single live GameState and drives all legal phase
// transitions. Every action takes the service mutex, applies exactly one
// state mutation, persists the durable slice of state (settings and the
// {id,name} roster) and then notifies connected clients.
type GameService struct {
	log         logger.Logger
	repo        GameRepository
	words       WordServicer
	broadcaster Broadcaster

	mu    sync.Mutex
	state models.GameState
}

// NewGameService creates a new GameService with default settings
func NewGameService(log logger.Logger, repo GameRepository, words WordServicer) *GameService {
	return &GameService{
		log:   log,
		repo:  repo,
		words: words,
		state: models.GameState{
			Settings:          defaultSettings(),
			Players:           []models.Player{},
			CurrentPhase:      models.PhaseSetup,
			EliminatedPlayers: []string{},
		},
	}
}

func defaultSettings() models.GameSettings {
	return models.GameSettings{
		GameMode:           models.ModeClassic,
		IncludeConfused:    false,
		NumPlayers:         MinPlayers,
		NumRounds:          3,
		DiscussionTime:     120,
		EnabledCategories:  []string{},
		AllowImpostorGuess: true,
	}
}

// SetBroadcaster sets the broadcaster for pushing state changes to clients
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcaster = b
}

// Load restores the persisted settings and roster. Roles and elimination
// state are never persisted, so a restart always lands in setup.
func (s *GameService) Load(ctx context.Context) error {
	settings, err := s.repo.GetGameSettings(ctx)
	if err != nil {
		return fmt.Errorf("loading game settings: %w", err)
	}
	players, err := s.repo.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if settings != nil {
		s.state.Settings = clampSettings(*settings)
	}
	if players != nil {
		s.state.Players = players
	}
	s.log.Info("Game state loaded", "players", len(s.state.Players))
	return nil
}

// State returns a snapshot of the current game state
func (s *GameService) State() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *GameService) snapshotLocked() models.GameState {
	snap := s.state
	snap.Players = make([]models.Player, len(s.state.Players))
	copy(snap.Players, s.state.Players)
	snap.EliminatedPlayers = make([]string, len(s.state.EliminatedPlayers))
	copy(snap.EliminatedPlayers, s.state.EliminatedPlayers)
	snap.Settings.EnabledCategories = make([]string, len(s.state.Settings.EnabledCategories))
	copy(snap.Settings.EnabledCategories, s.state.Settings.EnabledCategories)
	return snap
}

// SettingsUpdate holds a partial settings change. Nil fields are left
// unchanged.
type SettingsUpdate struct {
	GameMode           *models.GameMode
	IncludeConfused    *bool
	NumPlayers         *int
	NumRounds          *int
	DiscussionTime     *int
	EnabledCategories  []string
	AllowImpostorGuess *bool
	Theme              *string
}

// UpdateSettings merges the given fields into the game settings, clamping
// numeric fields to their allowed ranges, and persists the result
func (s *GameService) UpdateSettings(ctx context.Context, update SettingsUpdate) (models.GameSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.state.Settings
	if update.GameMode != nil {
		if !update.GameMode.Valid() {
			return settings, errors.Validationf("unknown game mode %q", *update.GameMode)
		}
		settings.GameMode = *update.GameMode
	}
	if update.IncludeConfused != nil {
		settings.IncludeConfused = *update.IncludeConfused
	}
	if update.NumPlayers != nil {
		settings.NumPlayers = *update.NumPlayers
	}
	if update.NumRounds != nil {
		settings.NumRounds = *update.NumRounds
	}
	if update.DiscussionTime != nil {
		settings.DiscussionTime = *update.DiscussionTime
	}
	if update.EnabledCategories != nil {
		settings.EnabledCategories = update.EnabledCategories
	}
	if update.AllowImpostorGuess != nil {
		settings.AllowImpostorGuess = *update.AllowImpostorGuess
	}
	if update.Theme != nil {
		settings.Theme = *update.Theme
	}

	settings = clampSettings(settings)
	s.state.Settings = settings

	if err := s.repo.SaveGameSettings(ctx, settings); err != nil {
		return settings, err
	}
	return settings, nil
}

func clampSettings(settings models.GameSettings) models.GameSettings {
	if settings.NumPlayers < MinPlayers {
		settings.NumPlayers = MinPlayers
	}
	if settings.NumPlayers > MaxPlayers {
		settings.NumPlayers = MaxPlayers
	}
	if settings.NumRounds < 1 {
		settings.NumRounds = 1
	}
	if settings.DiscussionTime < MinDiscussionTime {
		settings.DiscussionTime = MinDiscussionTime
	}
	if settings.DiscussionTime > MaxDiscussionTime {
		settings.DiscussionTime = MaxDiscussionTime
	}
	if !settings.GameMode.Valid() {
		settings.GameMode = models.ModeClassic
	}
	return settings
}

// ==================== Roster ====================

// AddPlayer appends a player to the roster during setup
func (s *GameService) AddPlayer(ctx context.Context, name string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseSetup {
		return nil, errors.Conflict("players can only be added during setup")
	}
	if len(s.state.Players) >= MaxPlayers {
		return nil, errors.Validationf("roster is full (max %d players)", MaxPlayers)
	}

	player := models.Player{
		ID:   uuid.NewString(),
		Name: name,
		Role: models.RoleCitizen,
	}
	s.state.Players = append(s.state.Players, player)

	if err := s.repo.SaveRoster(ctx, s.state.Players); err != nil {
		return nil, err
	}
	return &player, nil
}

// RemovePlayer drops a player from the roster during setup. Unknown ids
// are ignored.
func (s *GameService) RemovePlayer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseSetup {
		return errors.Conflict("players can only be removed during setup")
	}

	kept := s.state.Players[:0]
	for _, p := range s.state.Players {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(s.state.Players) {
		return nil // stale id, nothing to do
	}
	s.state.Players = kept

	return s.repo.SaveRoster(ctx, s.state.Players)
}

// UpdatePlayerName renames a roster player. Unknown ids are ignored.
func (s *GameService) UpdatePlayerName(ctx context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.state.Players {
		if s.state.Players[i].ID == id {
			s.state.Players[i].Name = name
			found = true
		}
	}
	if !found {
		return nil
	}

	return s.repo.SaveRoster(ctx, s.state.Players)
}

// ==================== Phase transitions ====================

// StartGame assigns roles, selects the secret word(s) and moves from
// setup to the role-reveal phase. Word selection failure surfaces as a
// NoWords error and leaves the state untouched.
func (s *GameService) StartGame(ctx context.Context) (models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseSetup {
		return s.snapshotLocked(), errors.Conflict("game already in progress")
	}
	return s.startLocked(ctx)
}

func (s *GameService) startLocked(ctx context.Context) (models.GameState, error) {
	n := len(s.state.Players)
	if n < MinPlayers || n > MaxPlayers {
		return s.snapshotLocked(), errors.Validationf("need between %d and %d players, have %d", MinPlayers, MaxPlayers, n)
	}

	// Blank names left over from editing become placeholders
	for i := range s.state.Players {
		if strings.TrimSpace(s.state.Players[i].Name) == "" {
			s.state.Players[i].Name = fmt.Sprintf("Player %d", i+1)
		}
	}

	selection, err := s.words.SelectGameWords(ctx, s.state.Settings.GameMode, s.state.Settings.IncludeConfused)
	if err != nil {
		return s.snapshotLocked(), err
	}

	s.state.Players = AssignRoles(s.state.Players, s.state.Settings.GameMode, s.state.Settings.IncludeConfused)
	s.state.CurrentPhase = models.PhaseRoles
	s.state.CurrentRound = 1
	s.state.CurrentPlayerIndex = 0
	s.state.SecretWord = selection.SecretWord
	s.state.SecretWordCategory = selection.Category
	s.state.UndercoverWord = selection.UndercoverWord
	s.state.ConfusedWord = selection.ConfusedWord
	s.state.SelectedPlayerID = ""
	s.state.EliminatedPlayers = []string{}
	s.state.Winner = ""
	s.state.GameEnded = false
	s.state.TimerRemaining = 0
	s.state.TimerRunning = false

	if err := s.repo.SaveGameSettings(ctx, s.state.Settings); err != nil {
		s.log.Warn("Failed to persist settings at game start", "error", err)
	}
	if err := s.repo.SaveRoster(ctx, s.state.Players); err != nil {
		s.log.Warn("Failed to persist roster at game start", "error", err)
	}

	s.log.Info("Game started",
		"players", n,
		"mode", s.state.Settings.GameMode,
		"confused", s.state.Settings.IncludeConfused,
		"category", s.state.SecretWordCategory)

	return s.broadcastLocked(), nil
}

// ConfirmRoleSeen marks the player's reveal step done and advances the
// turn pointer; completing the last player moves the game into rounds
func (s *GameService) ConfirmRoleSeen(ctx context.Context, playerID string) (models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseRoles {
		return s.snapshotLocked(), errors.Conflict("no role reveal in progress")
	}

	for i := range s.state.Players {
		if s.state.Players[i].ID == playerID {
			s.state.Players[i].HasSeenRole = true
		}
	}

	if s.state.CurrentPlayerIndex < len(s.state.Players)-1 {
		s.state.CurrentPlayerIndex++
	} else {
		s.state.CurrentPhase = models.PhaseRounds
		s.state.CurrentRound = 1
		s.state.CurrentPlayerIndex = 0
	}

	return s.broadcastLocked(), nil
}

// AdvanceRound moves to the next discussion round, or into the timer
// phase once all configured rounds are played
func (s *GameService) AdvanceRound(ctx context.Context) (models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseRounds {
		return s.snapshotLocked(), errors.Conflict("no round in progress")
	}

	if s.state.CurrentRound < s.state.Settings.NumRounds {
		s.state.CurrentRound++
	} else {
		s.enterTimerLocked()
	}

	return s.broadcastLocked(), nil
}

// StartDiscussion jumps from rounds straight into the timed discussion
func (s *GameService) StartDiscussion(ctx context.Context) (models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseRounds {
		return s.snapshotLocked(), errors.Conflict("discussion can only start from the rounds phase")
	}

	s.enterTimerLocked()
	return s.broadcastLocked(), nil
}

func (s *GameService) enterTimerLocked() {
	s.state.CurrentPhase = models.PhaseTimer
	s.state.TimerRemaining = s.state.Settings.DiscussionTime
	s.state.TimerRunning = true
}

// CompleteDiscussion ends (or skips) the discussion and opens voting
func (s *GameService) CompleteDiscussion(ctx context.Context) (models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseTimer {
		return s.snapshotLocked(), errors.Conflict("no discussion in progress")
	}

	s.state.CurrentPhase = models.PhaseSelection
	s.state.TimerRunning = false

	return s.broadcastLocked(), nil
}

// CastVote eliminates the selected player and resolves the outcome: a
// caught impostor with the final-guess rule on suspends the verdict in
// the impostor-guess phase; anything else ends the game. Votes against
// unknown ids are ignored; votes against eliminated players are rejected.
func (s *GameService) CastVote(ctx context.Context, playerID string) (models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseSelection {
		return s.snapshotLocked(), errors.Conflict("voting is not open")
	}

	var target *models.Player
	for i := range s.state.Players {
		if s.state.Players[i].ID == playerID {
			target = &s.state.Players[i]
			break
		}
	}
	if target == nil {
		return s.snapshotLocked(), nil // stale id, nothing to do
	}
	if target.IsEliminated {
		return s.snapshotLocked(), errors.Validation("player is already eliminated")
	}

	s.state.SelectedPlayerID = target.ID
	target.IsEliminated = true
	s.state.EliminatedPlayers = append(s.state.EliminatedPlayers, target.ID)

	if target.Role.IsThreat() && s.state.Settings.AllowImpostorGuess {
		s.state.CurrentPhase = models.PhaseImpostorGuess
		s.log.Info("Impostor caught, awaiting final guess", "player", target.Name)
	} else {
		s.state.Winner = CheckWinCondition(*target)
		s.state.CurrentPhase = models.PhaseEndgame
		s.state.GameEnded = true
		s.log.Info("Game over", "eliminated", target.Name, "role", target.Role, "winner", s.state.Winner)
	}

	return s.broadcastLocked(), nil
}

// ResolveImpostorGuess settles the caught impostor's final word guess
func (s *GameService) ResolveImpostorGuess(ctx context.Context, correct bool) (models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseImpostorGuess {
		return s.snapshotLocked(), errors.Conflict("no impostor guess pending")
	}

	if correct {
		s.state.Winner = models.WinnerImpostors
	} else {
		s.state.Winner = models.WinnerCitizens
	}
	s.state.CurrentPhase = models.PhaseEndgame
	s.state.GameEnded = true

	s.log.Info("Impostor guess resolved", "correct", correct, "winner", s.state.Winner)
	return s.broadcastLocked(), nil
}

// ResetGame returns to setup, clearing all round, phase and word state.
// Player names survive; roles, reveal flags and eliminations do not.
func (s *GameService) ResetGame(ctx context.Context) (models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Players {
		s.state.Players[i].Role = models.RoleCitizen
		s.state.Players[i].IsEliminated = false
		s.state.Players[i].HasSeenRole = false
	}

	s.state.CurrentPhase = models.PhaseSetup
	s.state.CurrentRound = 0
	s.state.CurrentPlayerIndex = 0
	s.state.SecretWord = ""
	s.state.SecretWordCategory = ""
	s.state.UndercoverWord = ""
	s.state.ConfusedWord = ""
	s.state.SelectedPlayerID = ""
	s.state.EliminatedPlayers = []string{}
	s.state.Winner = ""
	s.state.GameEnded = false
	s.state.TimerRemaining = 0
	s.state.TimerRunning = false

	if err := s.repo.SaveRoster(ctx, s.state.Players); err != nil {
		return s.snapshotLocked(), err
	}

	return s.broadcastLocked(), nil
}

// PlayAgain restarts with the same roster and settings from the endgame
func (s *GameService) PlayAgain(ctx context.Context) (models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseEndgame {
		return s.snapshotLocked(), errors.Conflict("the game has not ended")
	}
	return s.startLocked(ctx)
}

// ==================== Discussion timer ====================

// PauseTimer stops the discussion countdown
func (s *GameService) PauseTimer() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase == models.PhaseTimer {
		s.state.TimerRunning = false
	}
	return s.snapshotLocked()
}

// ResumeTimer restarts a paused discussion countdown
func (s *GameService) ResumeTimer() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase == models.PhaseTimer && s.state.TimerRemaining > 0 {
		s.state.TimerRunning = true
	}
	return s.snapshotLocked()
}

// TickTimer advances the countdown by one second. Returns true exactly
// once, on the tick that reaches zero. Hitting zero only unlocks voting;
// the phase transition stays with CompleteDiscussion.
func (s *GameService) TickTimer() (models.GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentPhase != models.PhaseTimer || !s.state.TimerRunning {
		return s.snapshotLocked(), false
	}

	s.state.TimerRemaining--
	if s.state.TimerRemaining <= 0 {
		s.state.TimerRemaining = 0
		s.state.TimerRunning = false
		return s.snapshotLocked(), true
	}
	return s.snapshotLocked(), false
}

// ==================== Win evaluation ====================

// CheckWinCondition decides the outcome of an elimination: catching an
// impostor or undercover means the citizens win, anything else hands the
// game to the impostors. A confused player counts as an innocent.
func CheckWinCondition(eliminated models.Player) models.Winner {
	if eliminated.Role.IsThreat() {
		return models.WinnerCitizens
	}
	return models.WinnerImpostors
}

func (s *GameService) broadcastLocked() models.GameState {
	snap := s.snapshotLocked()
	if s.broadcaster != nil {
		s.broadcaster.BroadcastGameState(snap)
	}
	return snap
}
