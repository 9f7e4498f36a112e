package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/poule-tournament/brackets"
	"github.com/Dosada05/poule-tournament/models"
	"github.com/google/uuid"
)

func sampleTournament(t *testing.T) *models.Tournament {
	t.Helper()
	players := []string{"Ana", "Bruno", "Chloé", "Dmitri", "Eve", "Farid"}
	groups, err := brackets.CreateGroups(players, brackets.SeededRandom(1))
	if err != nil {
		t.Fatal(err)
	}
	groups[0], err = brackets.RecordGroupResult(groups[0], 0, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	bracket, err := brackets.GenerateBracket(players[:4], brackets.SeededRandom(2))
	if err != nil {
		t.Fatal(err)
	}
	bracket, _, err = brackets.RecordMatchResult(bracket, 0, 1, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	return &models.Tournament{
		ID:               uuid.New(),
		Name:             "Coupe du jeudi",
		Phase:            models.PhaseKnockout,
		Players:          players,
		Groups:           groups,
		QualifiedPlayers: groups[0].Standings[:2],
		KnockoutMatches:  bracket,
	}
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTournamentRepository()
	original := sampleTournament(t)

	if err := repo.Save(ctx, nil, original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if original.CreatedAt.IsZero() || original.UpdatedAt.IsZero() {
		t.Fatal("Save did not stamp timestamps")
	}

	loaded, err := repo.GetByID(ctx, nil, original.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	want, _ := json.Marshal(original)
	got, _ := json.Marshal(loaded)
	if !bytes.Equal(want, got) {
		t.Fatalf("snapshot changed on round trip\n got: %s\nwant: %s", got, want)
	}

	// Mutating a loaded snapshot must not leak into the store.
	loaded.Groups[0].Matches[0].Played = false
	again, _ := repo.GetByID(ctx, nil, original.ID)
	if !again.Groups[0].Matches[0].Played {
		t.Fatal("stored snapshot aliased the returned value")
	}
}

func TestMemoryRepositoryListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTournamentRepository()

	older := &models.Tournament{ID: uuid.New(), Name: "older", Phase: models.PhaseConfig, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Tournament{ID: uuid.New(), Name: "newer", Phase: models.PhaseConfig}
	for _, tt := range []*models.Tournament{older, newer} {
		if err := repo.Save(ctx, nil, tt); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Name != "newer" || list[1].Name != "older" {
		t.Fatalf("unexpected list order: %+v", list)
	}

	if err := repo.Delete(ctx, older.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, nil, older.ID); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("got %v after delete", err)
	}
	if err := repo.Delete(ctx, older.ID); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}
