package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultScoringWorkers = 4

// scoredGroups is the order lines are reported in for one player.
var scoredGroups = []fantasy.StatGroup{fantasy.StatGroupPitching, fantasy.StatGroupHitting}

type ScoreReport struct {
	Lines []fantasy.Line
	Total float64
}

type ScoringService struct {
	provider   StatsProvider
	rules      fantasy.Rules
	maxWorkers int
	logger     *logging.Logger
}

func NewScoringService(provider StatsProvider, rules fantasy.Rules, maxWorkers int, logger *logging.Logger) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = defaultScoringWorkers
	}
	return &ScoringService{
		provider:   provider,
		rules:      rules,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

type slotScore struct {
	order int
	lines []fantasy.Line
}

// Score fetches both stat groups for every rostered player and applies the
// points rules. Lines come back in roster order, pitching before hitting.
func (s *ScoringService) Score(ctx context.Context, item roster.Roster) (ScoreReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Score")
	defer span.End()

	entries := item.Entries()
	if len(entries) == 0 {
		return ScoreReport{}, nil
	}

	p := pool.NewWithResults[slotScore]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.maxWorkers)
	for i, entry := range entries {
		i, entry := i, entry
		p.Go(func(ctx context.Context) (slotScore, error) {
			lines, err := s.scoreEntry(ctx, entry)
			if err != nil {
				return slotScore{}, err
			}
			return slotScore{order: i, lines: lines}, nil
		})
	}

	slots, err := p.Wait()
	if err != nil {
		return ScoreReport{}, err
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].order < slots[j].order })

	report := ScoreReport{Lines: make([]fantasy.Line, 0, len(entries)*len(scoredGroups))}
	for _, slot := range slots {
		report.Lines = append(report.Lines, slot.lines...)
	}
	report.Total = fantasy.Total(report.Lines, s.rules)

	s.logger.InfoContext(ctx, "roster scored", "lines", len(report.Lines), "total", report.Total)
	return report, nil
}

func (s *ScoringService) scoreEntry(ctx context.Context, entry roster.Entry) ([]fantasy.Line, error) {
	lines := make([]fantasy.Line, 0, len(scoredGroups))
	for _, group := range scoredGroups {
		block, ok, err := s.provider.StatBlock(ctx, entry.Player.ID, group)
		if err != nil {
			return nil, fmt.Errorf("fetch %s stats for %s: %w", group, entry.Player.Name, err)
		}
		if !ok {
			continue
		}

		points, err := fantasy.Points(group, block, s.rules)
		if err != nil {
			return nil, fmt.Errorf("score %s for %s: %w", group, entry.Player.Name, err)
		}
		lines = append(lines, fantasy.Line{
			Position:   entry.Position.String(),
			PlayerID:   entry.Player.ID,
			PlayerName: entry.Player.Name,
			Group:      group,
			Points:     points,
		})
	}
	return lines, nil
}
