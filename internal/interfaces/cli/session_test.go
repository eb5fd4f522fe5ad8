package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	"github.com/riskibarqy/mlb-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
	"github.com/riskibarqy/mlb-fantasy/internal/usecase"
)

var playerPool = []usecase.ExternalPlayer{
	{ID: 660271, FullName: "Shohei Ohtani", PrimaryPosition: "TWP"},
	{ID: 543037, FullName: "Gerrit Cole", PrimaryPosition: "P"},
	{ID: 669257, FullName: "Will Smith", PrimaryPosition: "C"},
	{ID: 519293, FullName: "Will Smith", PrimaryPosition: "P"},
	{ID: 518692, FullName: "Freddie Freeman", PrimaryPosition: "1B"},
	{ID: 543760, FullName: "Marcus Semien", PrimaryPosition: "2B"},
	{ID: 592518, FullName: "Manny Machado", PrimaryPosition: "3B"},
	{ID: 605141, FullName: "Mookie Betts", PrimaryPosition: "SS"},
	{ID: 665742, FullName: "Juan Soto", PrimaryPosition: "LF"},
	{ID: 545361, FullName: "Mike Trout", PrimaryPosition: "CF"},
	{ID: 592450, FullName: "Aaron Judge", PrimaryPosition: "RF"},
}

// fakeProvider answers lookups by case-insensitive substring of the full name.
type fakeProvider struct {
	blocks    map[int64]map[fantasy.StatGroup]fantasy.StatBlock
	summaries map[int64]usecase.PlayerSummary
}

func (f *fakeProvider) LookupPlayers(_ context.Context, query string) ([]usecase.ExternalPlayer, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]usecase.ExternalPlayer, 0)
	for _, candidate := range playerPool {
		if strings.Contains(strings.ToLower(candidate.FullName), query) {
			out = append(out, candidate)
		}
	}
	return out, nil
}

func (f *fakeProvider) StatBlock(_ context.Context, playerID int64, group fantasy.StatGroup) (fantasy.StatBlock, bool, error) {
	block, ok := f.blocks[playerID][group]
	return block, ok, nil
}

func (f *fakeProvider) SeasonSummary(_ context.Context, playerID int64) (usecase.PlayerSummary, error) {
	return f.summaries[playerID], nil
}

type sessionHarness struct {
	session *Session
	repo    *memory.RosterRepository
	out     *bytes.Buffer
}

func newHarness(t *testing.T, input string, repo *memory.RosterRepository, provider *fakeProvider) sessionHarness {
	t.Helper()

	if repo == nil {
		repo = memory.NewRosterRepository("__jsondata__/mlbfantasy.json")
	}
	if provider == nil {
		provider = &fakeProvider{}
	}

	logger := logging.NewNop()
	services := Services{
		Roster:  usecase.NewRosterService(repo, logger),
		Search:  usecase.NewPlayerSearchService(provider, logger),
		Scoring: usecase.NewScoringService(provider, fantasy.DefaultRules(), 2, logger),
		Stats:   usecase.NewPlayerStatsService(provider),
	}

	out := &bytes.Buffer{}
	session := NewSession(services, Options{
		In:          strings.NewReader(input),
		Out:         out,
		ClearScreen: true,
		Logger:      logger,
		Now:         func() time.Time { return time.Date(2024, time.April, 5, 12, 0, 0, 0, time.UTC) },
	})
	return sessionHarness{session: session, repo: repo, out: out}
}

func seededRepo() *memory.RosterRepository {
	return memory.NewSeededRosterRepository("__jsondata__/mlbfantasy.json", roster.Roster{
		roster.PositionPitcher: {Name: "Gerrit Cole", ID: 543037},
		roster.PositionCatcher: {Name: "Will Smith", ID: 669257},
	})
}

func lines(items ...string) string {
	return strings.Join(items, "\n") + "\n"
}

func TestSession_DeclineBootstrapWritesNothing(t *testing.T) {
	t.Parallel()

	h := newHarness(t, lines("maybe", "n"), nil, nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := h.out.String()
	if !strings.Contains(output, "__jsondata__/mlbfantasy.json was not found, would you like to create a new team? (Y/N)") {
		t.Fatalf("missing bootstrap prompt:\n%s", output)
	}
	if !strings.Contains(output, "Please answer Y/N") {
		t.Fatalf("expected re-prompt on bad answer:\n%s", output)
	}
	if !strings.Contains(output, "Ending script.") {
		t.Fatalf("expected ending message:\n%s", output)
	}
	if strings.Contains(output, "Pick an action") {
		t.Fatalf("declined session must not reach the menu")
	}
	if h.repo.Saves() != 0 {
		t.Fatalf("declined bootstrap must not save")
	}
}

func TestSession_TeamBuilderFillsEveryPosition(t *testing.T) {
	t.Parallel()

	input := lines(
		"Y",
		"ohtani", "Y",
		"smith", "Y",
		"freeman", "Y",
		"semien", "Y",
		"machado", "Y",
		"betts", "Y",
		"soto", "Y",
		"trout", "Y",
		"judge", "Y",
		"q",
	)
	h := newHarness(t, input, nil, nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if h.repo.Saves() != 1 {
		t.Fatalf("expected a single save on creation, got %d", h.repo.Saves())
	}
	saved, err := h.repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !saved.Complete() {
		t.Fatalf("expected all nine positions, got %v", saved)
	}
	if got, _ := saved.Get(roster.PositionPitcher); got.ID != 660271 {
		t.Fatalf("two-way player should fill P, got %v", got)
	}
	if got, _ := saved.Get(roster.PositionCatcher); got.ID != 669257 {
		t.Fatalf("catcher filter should keep only the C Will Smith, got %v", got)
	}

	output := h.out.String()
	for _, pos := range roster.Positions() {
		if !strings.Contains(output, "Now choosing position: "+pos.String()) {
			t.Fatalf("missing position header %s", pos)
		}
	}
	if !strings.Contains(output, "Fantasy team created.") {
		t.Fatalf("missing creation message:\n%s", output)
	}
}

func TestSession_TeamBuilderBadAnswerRestartsLookup(t *testing.T) {
	t.Parallel()

	// "will" matches the P Will Smith only; "x" aborts the list, then the
	// query is asked again for the same position before q cancels.
	input := lines("Y", "will", "x", "q")
	h := newHarness(t, input, nil, nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := h.out.String()
	if !strings.Contains(output, "***Error: Please answer Y or N, restart lookup") {
		t.Fatalf("missing restart message:\n%s", output)
	}
	if got := strings.Count(output, "Now choosing position: P"); got != 1 {
		t.Fatalf("position must not advance, header printed %d times", got)
	}
	if got := strings.Count(output, "Input a player's first, last, or fullname:"); got != 2 {
		t.Fatalf("expected query prompt twice, got %d", got)
	}
	if !strings.Contains(output, "Ending script.") {
		t.Fatalf("q must cancel team creation:\n%s", output)
	}
	if h.repo.Saves() != 0 {
		t.Fatalf("cancelled creation must not save")
	}
}

func TestSession_TeamBuilderExhaustedCandidatesRepromptSamePosition(t *testing.T) {
	t.Parallel()

	// Both P candidates are declined, so P is asked again.
	input := lines("Y", "o", "N", "N", "q")
	h := newHarness(t, input, nil, nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := h.out.String()
	if got := strings.Count(output, "Input a player's first, last, or fullname:"); got != 2 {
		t.Fatalf("expected a second query prompt for P, got %d", got)
	}
	if strings.Contains(output, "Now choosing position: C") {
		t.Fatalf("position advanced without acceptance")
	}
}

func TestSession_UnknownCommandChangesNothing(t *testing.T) {
	t.Parallel()

	h := newHarness(t, lines("dance", "  DISPLAY ROSTER  ", "q"), seededRepo(), nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := h.out.String()
	if !strings.Contains(output, "Fantasy team loaded successfully.") {
		t.Fatalf("expected load message:\n%s", output)
	}
	if !strings.Contains(output, "Please choose one of the options") {
		t.Fatalf("expected invalid option message:\n%s", output)
	}
	if !strings.Contains(output, "Pos: P\nPlayer name and ID: Gerrit Cole, 543037") {
		t.Fatalf("expected normalized command to display roster:\n%s", output)
	}
	if strings.Contains(output, clearSequence) {
		t.Fatalf("screen must not be cleared when output is not a terminal")
	}
	if h.repo.Saves() != 0 {
		t.Fatalf("no command here may save")
	}
	if h.session.Team().Len() != 2 {
		t.Fatalf("roster changed: %v", h.session.Team())
	}
}

func TestSession_EndOfInputTerminates(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "", seededRepo(), nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	h = newHarness(t, "", nil, nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run during bootstrap: %v", err)
	}
	if h.repo.Saves() != 0 {
		t.Fatalf("EOF during bootstrap must not save")
	}
}

func TestSession_UpdateRosterAssignsAndPersists(t *testing.T) {
	t.Parallel()

	input := lines("update roster", "ZZ", " 1b ", "nobody", "free", "maybe", "Y", "q")
	h := newHarness(t, input, seededRepo(), nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := h.out.String()
	for _, want := range []string{
		"Please enter a valid position",
		"Search returned 0 players who play as 1B",
		"Please search again:",
		"Search returned 1 players who play as 1B",
		"Please answer Y/N",
		"New 1B: Freddie Freeman (518692)",
		"Changes saved.",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("missing %q in output:\n%s", want, output)
		}
	}

	saved, err := h.repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := saved.Get(roster.PositionFirstBase); got.ID != 518692 {
		t.Fatalf("persisted 1B mismatch: %v", got)
	}
	if saved.Len() != 3 {
		t.Fatalf("other slots must be preserved, got %v", saved)
	}
}

func TestSession_UpdateRosterDeclinedDoesNotPersist(t *testing.T) {
	t.Parallel()

	input := lines("update roster", "p", "ohtani", "N", "q")
	h := newHarness(t, input, seededRepo(), nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := h.out.String()
	if !strings.Contains(output, "Two-way players can also play as pitchers.") {
		t.Fatalf("missing two-way note:\n%s", output)
	}
	if !strings.Contains(output, "No roster changes applied.") {
		t.Fatalf("missing no-change message:\n%s", output)
	}
	if h.repo.Saves() != 0 {
		t.Fatalf("declined update must not save")
	}
	if got, _ := h.session.Team().Get(roster.PositionPitcher); got.ID != 543037 {
		t.Fatalf("pitcher changed: %v", got)
	}
}

func TestSession_UpdateRosterQuitsFromCandidateList(t *testing.T) {
	t.Parallel()

	input := lines("update roster", "P", "o", "q", "q")
	h := newHarness(t, input, seededRepo(), nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(h.out.String(), "No roster changes applied.") {
		t.Fatalf("missing no-change message:\n%s", h.out.String())
	}
	if h.repo.Saves() != 0 {
		t.Fatalf("quit must not save")
	}
}

func TestSession_DeleteTeamTerminates(t *testing.T) {
	t.Parallel()

	h := newHarness(t, lines("delete team", "display roster"), seededRepo(), nil)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := h.out.String()
	if !strings.Contains(output, "Fantasy team deleted.") {
		t.Fatalf("missing delete message:\n%s", output)
	}
	if strings.Contains(output, "Current fantasy team roster:") {
		t.Fatalf("session must end after delete")
	}
	if _, err := h.repo.Load(context.Background()); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("expected deleted roster, got %v", err)
	}
}

func TestSession_DisplayFantasyScore(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{blocks: map[int64]map[fantasy.StatGroup]fantasy.StatBlock{
		543037: {
			fantasy.StatGroupPitching: {
				"inningsPitched": "6.0", "hits": float64(4), "earnedRuns": float64(2), "intentionalWalks": float64(1),
				"strikeOuts": float64(7), "wins": float64(1), "losses": float64(0), "saves": float64(0),
			},
		},
		669257: {
			fantasy.StatGroupHitting: {
				"runs": float64(2), "totalBases": float64(5), "rbi": float64(3), "intentionalWalks": float64(0),
				"strikeOuts": float64(4), "stolenBases": float64(0),
			},
		},
	}}

	h := newHarness(t, lines("display fantasy score", "q"), seededRepo(), provider)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := h.out.String()
	for _, want := range []string{
		"Scoring guidelines based on ESPN's head-to-head scoring guidelines for public leagues",
		"Pitcher: Gerrit Cole fpts: 21",
		"Hitter: Will Smith fpts: 6",
		"The current fpts for your overall roster is: 27",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("missing %q in output:\n%s", want, output)
		}
	}
	if strings.Index(output, "Pitcher: Gerrit Cole") > strings.Index(output, "Hitter: Will Smith") {
		t.Fatalf("lines must follow roster order")
	}
}

func TestSession_ScoringErrorReachesCaller(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{blocks: map[int64]map[fantasy.StatGroup]fantasy.StatBlock{
		543037: {fantasy.StatGroupPitching: {"inningsPitched": "6.0"}},
	}}
	h := newHarness(t, lines("display fantasy score", "q"), seededRepo(), provider)
	err := h.session.Run(context.Background())
	if !errors.Is(err, fantasy.ErrMissingStat) {
		t.Fatalf("expected ErrMissingStat, got %v", err)
	}
}

func TestSession_DisplayStatsPagesEveryPlayer(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{summaries: map[int64]usecase.PlayerSummary{
		543037: {PlayerID: 543037, Sections: []usecase.StatSection{{
			Group:  fantasy.StatGroupPitching,
			Season: "2024",
			Stats:  fantasy.StatBlock{"wins": float64(15), "era": "3.41"},
		}}},
	}}

	h := newHarness(t, lines("display stats", "", "", "q"), seededRepo(), provider)
	if err := h.session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := h.out.String()
	for _, want := range []string{
		"FANTASY TEAM SEASON STATS AS OF 04/05/24",
		"Player name: Gerrit Cole",
		"Season Pitching (2024)\nera: 3.41\nwins: 15",
		"Player name: Will Smith",
		"No season stats available.",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("missing %q in output:\n%s", want, output)
		}
	}
	if got := strings.Count(output, "Press Enter to continue paging"); got != 2 {
		t.Fatalf("expected one page per player, got %d", got)
	}
}
