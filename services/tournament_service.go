package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/poule-tournament/brackets"
	"github.com/Dosada05/poule-tournament/models"
	"github.com/Dosada05/poule-tournament/repositories"
	"github.com/Dosada05/poule-tournament/storage"
	"github.com/google/uuid"
)

const (
	EventTournamentUpdated  = "TOURNAMENT_UPDATED"
	EventTournamentFinished = "TOURNAMENT_FINISHED"
	EventTournamentDeleted  = "TOURNAMENT_DELETED"
)

// Notifier pushes snapshots to the spectators of a room.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

type CreateTournamentInput struct {
	Name string `json:"name"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]*models.Tournament, error)
	DeleteTournament(ctx context.Context, id uuid.UUID) error

	RegisterPlayers(ctx context.Context, id uuid.UUID, names []string) (*models.Tournament, error)
	DrawGroups(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	RecordGroupResult(ctx context.Context, id uuid.UUID, groupIndex, matchIndex, score1, score2 int) (*models.Tournament, error)
	CompleteGroupStage(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	Qualification(ctx context.Context, id uuid.UUID) (*models.Qualification, error)

	StartKnockout(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	RecordKnockoutResult(ctx context.Context, id uuid.UUID, roundIndex, matchIndex, score1, score2 int) (*models.Tournament, error)
	ReopenKnockoutMatch(ctx context.Context, id uuid.UUID, roundIndex, matchIndex int) (*models.Tournament, error)

	ResetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	ExportTournament(ctx context.Context, id uuid.UUID) (string, error)
	BackupTournaments(ctx context.Context) (int, error)
}

type tournamentService struct {
	mu       sync.Mutex
	repo     repositories.TournamentRepository
	uploader storage.FileUploader
	notifier Notifier
	rnd      brackets.RandomSource
	logger   *slog.Logger
	now      func() time.Time
}

// NewTournamentService wires the state owner. uploader and notifier may be
// nil: exports then fail with ErrExportUnavailable and nobody is notified.
func NewTournamentService(
	repo repositories.TournamentRepository,
	uploader storage.FileUploader,
	notifier Notifier,
	rnd brackets.RandomSource,
	logger *slog.Logger,
) TournamentService {
	if rnd == nil {
		rnd = brackets.SystemRandom()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		repo:     repo,
		uploader: uploader,
		notifier: notifier,
		rnd:      rnd,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *tournamentService) load(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return t, nil
}

// mutate runs one transition under the service lock. fn works on a copy, so
// the stored snapshot only changes once fn succeeds and the save goes through.
func (s *tournamentService) mutate(ctx context.Context, id uuid.UUID, fn func(t *models.Tournament) error) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, nil, next); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", id, err)
	}

	event := EventTournamentUpdated
	if next.Phase == models.PhaseFinished && current.Phase != models.PhaseFinished {
		event = EventTournamentFinished
	}
	s.notify(event, next.ID, next)
	return next, nil
}

func (s *tournamentService) notify(event string, id uuid.UUID, payload interface{}) {
	if s.notifier == nil {
		return
	}
	room := brackets.RoomForTournament(id.String())
	s.notifier.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    event,
		Payload: payload,
		RoomID:  room,
	})
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := input.Name
	if name == "" {
		name = defaultTournamentName
	}
	now := s.now()
	t := &models.Tournament{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	resetToConfig(t)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Save(ctx, nil, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	s.logger.InfoContext(ctx, "tournament created", slog.String("tournament_id", t.ID.String()), slog.String("name", t.Name))
	return t, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	return s.load(ctx, id)
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return list, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err)
	}
	if s.uploader != nil {
		if err := s.uploader.Delete(ctx, exportKey(t)); err != nil {
			s.logger.WarnContext(ctx, "failed to delete tournament export", slog.String("tournament_id", id.String()), slog.Any("error", err))
		}
	}
	s.notify(EventTournamentDeleted, id, map[string]string{"id": id.String()})
	s.logger.InfoContext(ctx, "tournament deleted", slog.String("tournament_id", id.String()))
	return nil
}

func (s *tournamentService) RegisterPlayers(ctx context.Context, id uuid.UUID, names []string) (*models.Tournament, error) {
	players, err := normalizePlayers(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return s.mutate(ctx, id, func(t *models.Tournament) error {
		if err := requirePhase(t, models.PhaseConfig); err != nil {
			return err
		}
		t.Players = players
		t.Groups = []models.Group{}
		t.Phase = models.PhaseGroups
		return nil
	})
}

func (s *tournamentService) DrawGroups(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) error {
		if err := requirePhase(t, models.PhaseGroups); err != nil {
			return err
		}
		if len(t.Groups) > 0 {
			return ErrGroupsAlreadyDrawn
		}
		groups, err := brackets.CreateGroups(t.Players, s.rnd)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		t.Groups = groups
		s.logger.InfoContext(ctx, "groups drawn", slog.String("tournament_id", t.ID.String()), slog.Int("groups", len(groups)), slog.Int("players", len(t.Players)))
		return nil
	})
}

func (s *tournamentService) RecordGroupResult(ctx context.Context, id uuid.UUID, groupIndex, matchIndex, score1, score2 int) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) error {
		if err := requirePhase(t, models.PhaseGroups); err != nil {
			return err
		}
		if len(t.Groups) == 0 {
			return ErrGroupsNotDrawn
		}
		if groupIndex < 0 || groupIndex >= len(t.Groups) {
			return fmt.Errorf("%w: group %d", brackets.ErrMatchNotFound, groupIndex)
		}
		updated, err := brackets.RecordGroupResult(t.Groups[groupIndex], matchIndex, score1, score2)
		if err != nil {
			return err
		}
		t.Groups[groupIndex] = updated
		return nil
	})
}

func (s *tournamentService) CompleteGroupStage(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) error {
		if err := requirePhase(t, models.PhaseGroups); err != nil {
			return err
		}
		if len(t.Groups) == 0 {
			return ErrGroupsNotDrawn
		}
		if !brackets.GroupStageComplete(t.Groups) {
			return ErrGroupStageIncomplete
		}
		qualified := brackets.SelectQualifiers(t.Groups, len(t.Players))
		if target := brackets.QualifierTarget(len(t.Players)); len(qualified) < target {
			s.logger.WarnContext(ctx, "not enough players to fill the knockout bracket",
				slog.String("tournament_id", t.ID.String()),
				slog.Int("target", target),
				slog.Int("qualified", len(qualified)))
		}
		t.QualifiedPlayers = qualified
		t.Phase = models.PhaseQualified
		return nil
	})
}

func (s *tournamentService) Qualification(ctx context.Context, id uuid.UUID) (*models.Qualification, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requirePhase(t, models.PhaseQualified, models.PhaseKnockout, models.PhaseFinished); err != nil {
		return nil, err
	}
	return &models.Qualification{
		Qualified:  t.QualifiedPlayers,
		Eliminated: brackets.EliminatedPlayers(t.Players, t.QualifiedPlayers),
	}, nil
}

func (s *tournamentService) StartKnockout(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) error {
		if err := requirePhase(t, models.PhaseQualified); err != nil {
			return err
		}
		bracket, err := brackets.GenerateBracket(brackets.QualifierNames(t.QualifiedPlayers), s.rnd)
		if err != nil {
			return err
		}
		t.KnockoutMatches = bracket
		t.Winner = nil
		t.Phase = models.PhaseKnockout
		return nil
	})
}

func (s *tournamentService) RecordKnockoutResult(ctx context.Context, id uuid.UUID, roundIndex, matchIndex, score1, score2 int) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) error {
		if err := requirePhase(t, models.PhaseKnockout); err != nil {
			return err
		}
		bracket, champion, err := brackets.RecordMatchResult(t.KnockoutMatches, roundIndex, matchIndex, score1, score2)
		if err != nil {
			return err
		}
		t.KnockoutMatches = bracket
		if champion != "" {
			t.Winner = &champion
			t.Phase = models.PhaseFinished
			s.logger.InfoContext(ctx, "tournament finished", slog.String("tournament_id", t.ID.String()), slog.String("winner", champion))
		}
		return nil
	})
}

func (s *tournamentService) ReopenKnockoutMatch(ctx context.Context, id uuid.UUID, roundIndex, matchIndex int) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) error {
		if err := requirePhase(t, models.PhaseKnockout, models.PhaseFinished); err != nil {
			return err
		}
		bracket, err := brackets.ReopenMatch(t.KnockoutMatches, roundIndex, matchIndex)
		if err != nil {
			return err
		}
		t.KnockoutMatches = bracket
		t.Winner = nil
		t.Phase = models.PhaseKnockout
		return nil
	})
}

func (s *tournamentService) ResetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	return s.mutate(ctx, id, func(t *models.Tournament) error {
		resetToConfig(t)
		return nil
	})
}

func (s *tournamentService) ExportTournament(ctx context.Context, id uuid.UUID) (string, error) {
	if s.uploader == nil {
		return "", ErrExportUnavailable
	}
	t, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	return s.export(ctx, t)
}

func (s *tournamentService) export(ctx context.Context, t *models.Tournament) (string, error) {
	body, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	result, err := s.uploader.Upload(ctx, exportKey(t), "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to upload tournament %s: %w", t.ID, err)
	}
	return result.Location, nil
}

// BackupTournaments exports every stored snapshot and reports how many made
// it. Individual failures do not stop the run.
func (s *tournamentService) BackupTournaments(ctx context.Context) (int, error) {
	if s.uploader == nil {
		return 0, ErrExportUnavailable
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tournaments for backup: %w", err)
	}
	exported := 0
	var errs []error
	for _, t := range list {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if _, err := s.export(ctx, t); err != nil {
			errs = append(errs, err)
			continue
		}
		exported++
	}
	return exported, errors.Join(errs...)
}
