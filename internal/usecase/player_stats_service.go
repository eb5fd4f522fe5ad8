package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
)

type PlayerStatsService struct {
	provider StatsProvider
}

func NewPlayerStatsService(provider StatsProvider) *PlayerStatsService {
	return &PlayerStatsService{provider: provider}
}

func (s *PlayerStatsService) SeasonSummary(ctx context.Context, p roster.Player) (PlayerSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.SeasonSummary")
	defer span.End()

	if p.ID <= 0 {
		return PlayerSummary{}, fmt.Errorf("%w: player id must be > 0", ErrInvalidInput)
	}

	summary, err := s.provider.SeasonSummary(ctx, p.ID)
	if err != nil {
		return PlayerSummary{}, fmt.Errorf("season summary for %s: %w", p.Name, err)
	}
	if summary.FullName == "" {
		summary.FullName = p.Name
	}
	return summary, nil
}
