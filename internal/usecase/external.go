package usecase

import (
	"context"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/fantasy"
)

// ExternalPlayer is one candidate returned by a player lookup.
type ExternalPlayer struct {
	ID              int64
	FullName        string
	PrimaryPosition string
}

// StatSection is one stat group of a player's season summary.
type StatSection struct {
	Group  fantasy.StatGroup
	Season string
	Stats  fantasy.StatBlock
}

type PlayerSummary struct {
	PlayerID int64
	FullName string
	Sections []StatSection
}

// StatsProvider is the remote sports statistics collaborator.
type StatsProvider interface {
	LookupPlayers(ctx context.Context, query string) ([]ExternalPlayer, error)
	// StatBlock returns false when the player has no season entry for group.
	StatBlock(ctx context.Context, playerID int64, group fantasy.StatGroup) (fantasy.StatBlock, bool, error)
	SeasonSummary(ctx context.Context, playerID int64) (PlayerSummary, error)
}
