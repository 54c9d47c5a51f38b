package services

import (
	"math/rand/v2"

	"github.com/impostor-party/impostor/internal/models"
)

// AssignRoles deals roles to the given players for one game. Classic and
// undercover modes get exactly one impostor-type role; chaos mode rolls
// the impostor count uniformly in [0, N-1]. When includeConfused is set
// one slot becomes confused before impostors are dealt. Role placement is
// a uniform permutation over the fixed player order; every player comes
// back with elimination and reveal state cleared.
func AssignRoles(players []models.Player, mode models.GameMode, includeConfused bool) []models.Player {
	total := len(players)

	impostorCount := 1
	if mode == models.ModeChaos && total > 0 {
		impostorCount = rand.IntN(total)
	}

	roles := make([]models.Role, total)
	for i := range roles {
		roles[i] = models.RoleCitizen
	}

	next := 0
	if includeConfused && next < total {
		roles[next] = models.RoleConfused
		next++
	}

	remaining := total - next
	if impostorCount > remaining {
		impostorCount = remaining
	}
	for i := 0; i < impostorCount; i++ {
		if mode == models.ModeUndercover && i == 0 {
			roles[next] = models.RoleUndercover
		} else {
			roles[next] = models.RoleImpostor
		}
		next++
	}

	// Fisher-Yates over role labels only; player order stays fixed
	for i := len(roles) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		roles[i], roles[j] = roles[j], roles[i]
	}

	assigned := make([]models.Player, total)
	for i, p := range players {
		p.Role = roles[i]
		p.IsEliminated = false
		p.HasSeenRole = false
		assigned[i] = p
	}
	return assigned
}
