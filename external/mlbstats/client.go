package mlbstats

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/mlb-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/cache"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/mlb-fantasy/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL      = "https://statsapi.mlb.com/api"
	defaultSportID      = 1
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 8 << 20
)

var errTransient = crerr.New("mlb stats transient failure")

var summaryGroups = []fantasy.StatGroup{
	fantasy.StatGroupHitting,
	fantasy.StatGroupPitching,
	fantasy.StatGroupFielding,
}

var tracer = otel.Tracer("mlb-fantasy/external/mlbstats")

type ClientConfig struct {
	HTTPClient   *http.Client
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	SportID      int
	// Season 0 means the current calendar year.
	Season         int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// CacheEnabled keeps season player lists between lookups for CacheTTL.
	CacheEnabled bool
	CacheTTL     time.Duration
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	sportID      int
	season       int
	logger       *logging.Logger
	breaker      *resilience.Breaker
	flight       singleflight.Group
	players      *cache.Store[[]playerRecord]
	now          func() time.Time
}

var _ usecase.StatsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	sportID := cfg.SportID
	if sportID <= 0 {
		sportID = defaultSportID
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	breakerCfg := cfg.CircuitBreaker
	if strings.TrimSpace(breakerCfg.Name) == "" {
		breakerCfg.Name = "mlbstats"
	}

	var players *cache.Store[[]playerRecord]
	if cfg.CacheEnabled {
		players = cache.NewStore[[]playerRecord](cfg.CacheTTL)
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxRetries:   maxInt(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		sportID:      sportID,
		season:       cfg.Season,
		logger:       logger,
		breaker:      resilience.NewBreaker(breakerCfg, isCircuitFailure),
		players:      players,
		now:          time.Now,
	}
}

// LookupPlayers matches query terms against the season player list.
func (c *Client) LookupPlayers(ctx context.Context, query string) ([]usecase.ExternalPlayer, error) {
	ctx, span := tracer.Start(ctx, "mlbstats.LookupPlayers")
	defer span.End()

	terms := lookupTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	season := c.resolveSeason()
	span.SetAttributes(attribute.Int("mlbstats.season", season))

	key := fmt.Sprintf("players:%d:%d", c.sportID, season)
	all, err := c.players.GetOrLoad(ctx, key, func(ctx context.Context) ([]playerRecord, error) {
		return c.fetchPlayers(ctx, season)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := make([]usecase.ExternalPlayer, 0, 8)
	for _, candidate := range all {
		if candidate.matches(terms) {
			out = append(out, candidate.external())
		}
	}
	span.SetAttributes(attribute.Int("mlbstats.matches", len(out)))
	return out, nil
}

// StatBlock returns the season split for one stat group. ok is false when
// the player has no entry for the group.
func (c *Client) StatBlock(ctx context.Context, playerID int64, group fantasy.StatGroup) (fantasy.StatBlock, bool, error) {
	ctx, span := tracer.Start(ctx, "mlbstats.StatBlock", trace.WithAttributes(
		attribute.Int64("mlbstats.player_id", playerID),
		attribute.String("mlbstats.group", string(group)),
	))
	defer span.End()

	person, err := c.fetchPersonStats(ctx, playerID, []fantasy.StatGroup{group})
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}

	for _, entry := range person.Stats {
		if !strings.EqualFold(entry.Group.DisplayName, string(group)) {
			continue
		}
		if len(entry.Splits) == 0 || entry.Splits[0].Stat == nil {
			return nil, false, nil
		}
		return fantasy.StatBlock(entry.Splits[0].Stat), true, nil
	}
	return nil, false, nil
}

func (c *Client) SeasonSummary(ctx context.Context, playerID int64) (usecase.PlayerSummary, error) {
	ctx, span := tracer.Start(ctx, "mlbstats.SeasonSummary", trace.WithAttributes(
		attribute.Int64("mlbstats.player_id", playerID),
	))
	defer span.End()

	person, err := c.fetchPersonStats(ctx, playerID, summaryGroups)
	if err != nil {
		span.RecordError(err)
		return usecase.PlayerSummary{}, err
	}

	summary := usecase.PlayerSummary{
		PlayerID: playerID,
		FullName: person.FullName,
		Sections: make([]usecase.StatSection, 0, len(person.Stats)),
	}
	for _, entry := range person.Stats {
		if len(entry.Splits) == 0 {
			continue
		}
		split := entry.Splits[0]
		summary.Sections = append(summary.Sections, usecase.StatSection{
			Group:  fantasy.StatGroup(strings.ToLower(entry.Group.DisplayName)),
			Season: split.Season,
			Stats:  fantasy.StatBlock(split.Stat),
		})
	}
	return summary, nil
}

func (c *Client) fetchPlayers(ctx context.Context, season int) ([]playerRecord, error) {
	path := fmt.Sprintf("/v1/sports/%d/players", c.sportID)
	query := url.Values{}
	query.Set("season", strconv.Itoa(season))

	var envelope playersEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch players season=%d", season)
	}

	out := make([]playerRecord, 0, len(envelope.People))
	for _, item := range envelope.People {
		if item.ID <= 0 {
			continue
		}
		out = append(out, item)
	}
	c.logger.DebugContext(ctx, "season players loaded", "season", season, "count", len(out))
	return out, nil
}

func (c *Client) fetchPersonStats(ctx context.Context, playerID int64, groups []fantasy.StatGroup) (personStats, error) {
	if playerID <= 0 {
		return personStats{}, fmt.Errorf("%w: player id must be greater than zero", usecase.ErrInvalidInput)
	}

	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, string(group))
	}
	query := url.Values{}
	query.Set("hydrate", fmt.Sprintf("stats(group=[%s],type=[season],sportId=%d)", strings.Join(names, ","), c.sportID))

	var envelope peopleEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/v1/people/%d", playerID), query, &envelope); err != nil {
		return personStats{}, crerr.Wrapf(err, "fetch stats player_id=%d", playerID)
	}
	if len(envelope.People) == 0 {
		return personStats{}, fmt.Errorf("%w: player_id=%d", usecase.ErrNotFound, playerID)
	}
	return envelope.People[0], nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		return c.breaker.Execute(func() (any, error) {
			return c.executeRequest(ctx, fullURL)
		})
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "mlb stats circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode stats payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Wrapf(errTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "mlb stats request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) resolveSeason() int {
	if c.season > 0 {
		return c.season
	}
	return c.now().Year()
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
