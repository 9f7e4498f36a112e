package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/poule-tournament/brackets"
	"github.com/Dosada05/poule-tournament/models"
	"github.com/Dosada05/poule-tournament/repositories"
	"github.com/gosimple/slug"
)

const (
	defaultTournamentName = "Tournoi"
	exportKeyPrefix       = "tournaments"
)

// normalizePlayers trims every name and enforces a non-empty, duplicate-free
// roster of at least two players.
func normalizePlayers(names []string) ([]string, error) {
	players := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: player #%d", brackets.ErrInvalidPlayerName, i+1)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayerName, name)
		}
		seen[key] = struct{}{}
		players = append(players, name)
	}
	if len(players) < 2 {
		return nil, brackets.ErrNotEnoughPlayers
	}
	return players, nil
}

func requirePhase(t *models.Tournament, allowed ...models.Phase) error {
	for _, p := range allowed {
		if t.Phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: tournament is in phase %q", ErrInvalidPhase, t.Phase)
}

func handleRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}

// exportKey builds the object key of a tournament's exported snapshot.
func exportKey(t *models.Tournament) string {
	base := slug.Make(t.Name)
	if base == "" {
		base = "tournament"
	}
	return fmt.Sprintf("%s/%s-%s.json", exportKeyPrefix, base, t.ID)
}

// resetToConfig clears everything but the identity of the tournament.
func resetToConfig(t *models.Tournament) {
	t.Phase = models.PhaseConfig
	t.Players = []string{}
	t.Groups = []models.Group{}
	t.QualifiedPlayers = []models.StandingsRow{}
	t.KnockoutMatches = models.Bracket{}
	t.Winner = nil
}
