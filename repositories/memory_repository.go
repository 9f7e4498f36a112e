package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/poule-tournament/models"
	"github.com/google/uuid"
)

// memoryTournamentRepository keeps snapshots JSON-encoded, the same shape
// the Postgres repository stores, so nothing returned aliases stored state.
type memoryTournamentRepository struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID][]byte
}

// NewMemoryTournamentRepository is used when no DATABASE_URL is configured.
func NewMemoryTournamentRepository() TournamentRepository {
	return &memoryTournamentRepository{snapshots: make(map[uuid.UUID][]byte)}
}

func (r *memoryTournamentRepository) Save(_ context.Context, _ SQLExecutor, t *models.Tournament) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	t.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot of tournament %s: %w", t.ID, err)
	}
	r.mu.Lock()
	r.snapshots[t.ID] = raw
	r.mu.Unlock()
	return nil
}

func (r *memoryTournamentRepository) GetByID(_ context.Context, _ SQLExecutor, id uuid.UUID) (*models.Tournament, error) {
	r.mu.RLock()
	raw, ok := r.snapshots[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return decodeSnapshot(raw)
}

func (r *memoryTournamentRepository) List(_ context.Context) ([]*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tournaments := make([]*models.Tournament, 0, len(r.snapshots))
	for _, raw := range r.snapshots {
		t, err := decodeSnapshot(raw)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	sort.Slice(tournaments, func(i, j int) bool {
		if !tournaments[i].CreatedAt.Equal(tournaments[j].CreatedAt) {
			return tournaments[i].CreatedAt.After(tournaments[j].CreatedAt)
		}
		return tournaments[i].ID.String() < tournaments[j].ID.String()
	})
	return tournaments, nil
}

func (r *memoryTournamentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snapshots[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(r.snapshots, id)
	return nil
}

func decodeSnapshot(raw []byte) (*models.Tournament, error) {
	var t models.Tournament
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament snapshot: %w", err)
	}
	return &t, nil
}
