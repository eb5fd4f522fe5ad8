package app

import (
	"io"
	"path/filepath"

	"github.com/riskibarqy/mlb-fantasy/external/mlbstats"
	"github.com/riskibarqy/mlb-fantasy/internal/config"
	"github.com/riskibarqy/mlb-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	"github.com/riskibarqy/mlb-fantasy/internal/infrastructure/repository/file"
	"github.com/riskibarqy/mlb-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/mlb-fantasy/internal/interfaces/cli"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/mlb-fantasy/internal/usecase"
)

type Options struct {
	In  io.Reader
	Out io.Writer
	// DryRun keeps the roster in memory so nothing is written to disk.
	DryRun bool
	// Provider replaces the remote stats client when set.
	Provider usecase.StatsProvider
}

// NewSession wires the roster store, the stats client and the use cases
// into an interactive session.
func NewSession(cfg config.Config, logger *logging.Logger, opts Options) *cli.Session {
	if logger == nil {
		logger = logging.Default()
	}

	provider := opts.Provider
	if provider == nil {
		provider = NewStatsClient(cfg, logger)
	}

	services := cli.Services{
		Roster:  usecase.NewRosterService(NewRosterRepository(cfg, opts.DryRun, logger), logger),
		Search:  usecase.NewPlayerSearchService(provider, logger),
		Scoring: usecase.NewScoringService(provider, fantasy.DefaultRules(), cfg.ScoringMaxWorkers, logger),
		Stats:   usecase.NewPlayerStatsService(provider),
	}

	return cli.NewSession(services, cli.Options{
		In:          opts.In,
		Out:         opts.Out,
		ClearScreen: cfg.ClearScreen,
		Logger:      logger,
	})
}

func NewRosterRepository(cfg config.Config, dryRun bool, logger *logging.Logger) roster.Repository {
	if dryRun {
		logger.Info("dry run, roster changes stay in memory")
		return memory.NewRosterRepository(filepath.Join(cfg.RosterDataDir, cfg.RosterFilename))
	}
	return file.NewRosterRepository(cfg.RosterDataDir, cfg.RosterFilename, logger)
}

func NewStatsClient(cfg config.Config, logger *logging.Logger) *mlbstats.Client {
	return mlbstats.NewClient(mlbstats.ClientConfig{
		BaseURL:    cfg.MLBStatsBaseURL,
		Timeout:    cfg.MLBStatsTimeout,
		MaxRetries: cfg.MLBStatsMaxRetries,
		SportID:    cfg.MLBStatsSportID,
		Season:     cfg.MLBStatsSeason,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Name:             "mlbstats",
			Enabled:          cfg.MLBStatsCircuitEnabled,
			FailureThreshold: cfg.MLBStatsCircuitFailureCount,
			OpenTimeout:      cfg.MLBStatsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MLBStatsCircuitHalfOpenMaxReq,
		},
		CacheEnabled: cfg.CacheEnabled,
		CacheTTL:     cfg.CacheTTL,
	})
}
