package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
)

type RosterService struct {
	repo   roster.Repository
	logger *logging.Logger
}

func NewRosterService(repo roster.Repository, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		repo:   repo,
		logger: logger,
	}
}

func (s *RosterService) Location() string {
	return s.repo.Name()
}

// Load returns exists=false without an error when no team was created yet.
func (s *RosterService) Load(ctx context.Context) (roster.Roster, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Load")
	defer span.End()

	item, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			s.logger.InfoContext(ctx, "no saved roster", "location", s.repo.Name())
			return roster.New(), false, nil
		}
		return nil, false, fmt.Errorf("load roster: %w", err)
	}

	return item, true, nil
}

// Create persists a freshly built roster.
func (s *RosterService) Create(ctx context.Context, item roster.Roster) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Create")
	defer span.End()

	if item == nil {
		return fmt.Errorf("%w: roster is required", ErrInvalidInput)
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return fmt.Errorf("save new roster: %w", err)
	}
	return nil
}

// Assign puts p at pos and persists the whole roster. On any error item is
// left untouched.
func (s *RosterService) Assign(ctx context.Context, item roster.Roster, pos roster.Position, p roster.Player) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Assign")
	defer span.End()

	if item == nil {
		return fmt.Errorf("%w: roster is required", ErrInvalidInput)
	}

	next := item.Clone()
	if err := next.Set(pos, p); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("save roster after assigning %s: %w", pos, err)
	}

	item[pos] = p
	s.logger.InfoContext(ctx, "roster slot assigned", "position", pos, "player_id", p.ID, "player_name", p.Name)
	return nil
}

func (s *RosterService) Delete(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}
	return nil
}
