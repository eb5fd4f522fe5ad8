package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
)

type PlayerSearchService struct {
	provider StatsProvider
	logger   *logging.Logger
}

func NewPlayerSearchService(provider StatsProvider, logger *logging.Logger) *PlayerSearchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerSearchService{
		provider: provider,
		logger:   logger,
	}
}

// Search looks players up by free text and keeps the ones eligible for pos,
// in the order the provider returned them.
func (s *PlayerSearchService) Search(ctx context.Context, query string, pos roster.Position) ([]ExternalPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerSearchService.Search")
	defer span.End()

	if !pos.Valid() {
		return nil, fmt.Errorf("%w: position %q", ErrInvalidInput, pos)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	candidates, err := s.provider.LookupPlayers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("lookup players: %w", err)
	}

	out := FilterByPosition(candidates, pos)
	s.logger.DebugContext(ctx, "player search", "query", query, "position", pos, "candidates", len(candidates), "eligible", len(out))
	return out, nil
}

// FilterByPosition keeps candidates whose primary position is pos. Two-way
// players also qualify as pitchers.
func FilterByPosition(candidates []ExternalPlayer, pos roster.Position) []ExternalPlayer {
	out := make([]ExternalPlayer, 0, len(candidates))
	for _, candidate := range candidates {
		if Eligible(candidate, pos) {
			out = append(out, candidate)
		}
	}
	return out
}

func Eligible(candidate ExternalPlayer, pos roster.Position) bool {
	abbr := candidate.PrimaryPosition
	if abbr == pos.String() {
		return true
	}
	return abbr == roster.PositionTwoWay && pos == roster.PositionPitcher
}

func (p ExternalPlayer) Player() roster.Player {
	return roster.Player{Name: p.FullName, ID: p.ID}
}
