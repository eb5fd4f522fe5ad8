package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	usecasemock "github.com/riskibarqy/mlb-fantasy/internal/mocks/usecase"
	"github.com/riskibarqy/mlb-fantasy/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pitchingBlock() fantasy.StatBlock {
	return fantasy.StatBlock{
		"inningsPitched":   "6.0",
		"hits":             float64(4),
		"earnedRuns":       float64(2),
		"intentionalWalks": float64(1),
		"strikeOuts":       float64(7),
		"wins":             float64(1),
		"losses":           float64(0),
		"saves":            float64(0),
	}
}

func hittingBlock() fantasy.StatBlock {
	return fantasy.StatBlock{
		"runs":             float64(3),
		"totalBases":       float64(9),
		"rbi":              float64(4),
		"intentionalWalks": float64(1),
		"strikeOuts":       float64(5),
		"stolenBases":      float64(2),
	}
}

func TestScoringService_TwoWayPlayerProducesTwoLines(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	// Ohtani pitches and hits, Freeman only hits.
	provider.On("StatBlock", mock.Anything, int64(660271), fantasy.StatGroupPitching).Return(pitchingBlock(), true, nil).Once()
	provider.On("StatBlock", mock.Anything, int64(660271), fantasy.StatGroupHitting).Return(hittingBlock(), true, nil).Once()
	provider.On("StatBlock", mock.Anything, int64(518692), fantasy.StatGroupPitching).Return(nil, false, nil).Once()
	provider.On("StatBlock", mock.Anything, int64(518692), fantasy.StatGroupHitting).Return(hittingBlock(), true, nil).Once()

	service := usecase.NewScoringService(provider, fantasy.DefaultRules(), 2, nil)
	team := roster.Roster{
		roster.PositionFirstBase: {Name: "Freddie Freeman", ID: 518692},
		roster.PositionPitcher:   {Name: "Shohei Ohtani", ID: 660271},
	}

	report, err := service.Score(context.Background(), team)
	require.NoError(t, err)
	require.Len(t, report.Lines, 3)

	require.Equal(t, "Pitcher: Shohei Ohtani", report.Lines[0].Label())
	require.Equal(t, 21.0, report.Lines[0].Points)
	require.Equal(t, "Hitter: Shohei Ohtani", report.Lines[1].Label())
	// 3 + 9 + 4 + 1 - 5 + 2 = 14
	require.Equal(t, 14.0, report.Lines[1].Points)
	require.Equal(t, "Hitter: Freddie Freeman", report.Lines[2].Label())
	require.Equal(t, 49.0, report.Total)
}

func TestScoringService_MissingStatFails(t *testing.T) {
	t.Parallel()

	block := pitchingBlock()
	delete(block, "saves")

	provider := usecasemock.NewStatsProvider(t)
	provider.On("StatBlock", mock.Anything, int64(543037), fantasy.StatGroupPitching).Return(block, true, nil).Once()

	service := usecase.NewScoringService(provider, fantasy.DefaultRules(), 1, nil)
	_, err := service.Score(context.Background(), roster.Roster{roster.PositionPitcher: {Name: "Gerrit Cole", ID: 543037}})
	if !errors.Is(err, fantasy.ErrMissingStat) {
		t.Fatalf("expected ErrMissingStat, got %v", err)
	}
}

func TestScoringService_ProviderErrorPropagates(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	provider.On("StatBlock", mock.Anything, int64(543037), fantasy.StatGroupPitching).Return(nil, false, usecase.ErrDependencyUnavailable).Once()

	service := usecase.NewScoringService(provider, fantasy.DefaultRules(), 1, nil)
	_, err := service.Score(context.Background(), roster.Roster{roster.PositionPitcher: {Name: "Gerrit Cole", ID: 543037}})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestScoringService_EmptyRoster(t *testing.T) {
	t.Parallel()

	service := usecase.NewScoringService(usecasemock.NewStatsProvider(t), fantasy.DefaultRules(), 0, nil)
	report, err := service.Score(context.Background(), roster.New())
	require.NoError(t, err)
	require.Empty(t, report.Lines)
	require.Zero(t, report.Total)
}

func TestPlayerStatsService_SeasonSummary(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	provider.On("SeasonSummary", mock.Anything, int64(592450)).Return(usecase.PlayerSummary{
		PlayerID: 592450,
		Sections: []usecase.StatSection{{Group: fantasy.StatGroupHitting, Season: "2024", Stats: hittingBlock()}},
	}, nil).Once()

	service := usecase.NewPlayerStatsService(provider)
	summary, err := service.SeasonSummary(context.Background(), roster.Player{Name: "Aaron Judge", ID: 592450})
	require.NoError(t, err)
	require.Equal(t, "Aaron Judge", summary.FullName)
	require.Len(t, summary.Sections, 1)

	_, err = service.SeasonSummary(context.Background(), roster.Player{Name: "Nobody"})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}
