package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/poule-tournament/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentConflict = errors.New("tournament already exists")
)

// TournamentRepository stores whole tournament snapshots. Every Save replaces
// the previous snapshot of that tournament.
type TournamentRepository interface {
	Save(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Save(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	t.UpdatedAt = time.Now().UTC()

	snapshot, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot of tournament %s: %w", t.ID, err)
	}

	query := `
		INSERT INTO tournament_snapshots (id, name, phase, snapshot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phase = EXCLUDED.phase,
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at`
	_, err = executor.ExecContext(ctx, query, t.ID, t.Name, string(t.Phase), snapshot, t.CreatedAt, t.UpdatedAt)
	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) scanSnapshot(rowScanner interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	var raw []byte
	if err := rowScanner.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	var t models.Tournament
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament snapshot: %w", err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id uuid.UUID) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `SELECT snapshot FROM tournament_snapshots WHERE id = $1`
	return r.scanSnapshot(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	query := `SELECT snapshot FROM tournament_snapshots ORDER BY created_at DESC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, errScan := r.scanSnapshot(rows)
		if errScan != nil {
			return nil, errScan
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournament_snapshots WHERE id = $1`, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrTournamentConflict
		case "22P02":
			return fmt.Errorf("%w: %s", ErrTournamentNotFound, pqErr.Message)
		}
	}
	return err
}
