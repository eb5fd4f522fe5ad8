package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

func TestRosterRepository_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "__jsondata__")
	repo := NewRosterRepository(dir, "mlbfantasy.json", nil)

	team := roster.Roster{
		roster.PositionPitcher:   {Name: "Gerrit Cole", ID: 543037},
		roster.PositionShortstop: {Name: "Anthony Volpe", ID: 683011},
	}
	require.NoError(t, repo.Save(ctx, team))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, team, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestRosterRepository_LoadMissingReportsNotFound(t *testing.T) {
	t.Parallel()

	repo := NewRosterRepository(t.TempDir(), "missing.json", nil)
	_, err := repo.Load(context.Background())
	if !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("expected roster.ErrNotFound, got %v", err)
	}
}

func TestRosterRepository_DeleteThenLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRosterRepository(t.TempDir(), "mlbfantasy.json", nil)
	require.NoError(t, repo.Save(ctx, roster.Roster{roster.PositionCatcher: {Name: "Jose Trevino", ID: 624431}}))

	require.NoError(t, repo.Delete(ctx))
	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, roster.ErrNotFound)

	require.NoError(t, repo.Delete(ctx), "deleting an absent roster is not an error")
}

func TestRosterRepository_ReadsLegacyLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	legacy := `{"P": ["Shohei Ohtani", 660271], "C": ["Will Smith", 669257], "1B": ["Freddie Freeman", 518692]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mlbfantasy.json"), []byte(legacy), 0o644))

	repo := NewRosterRepository(dir, "mlbfantasy.json", nil)
	got, err := repo.Load(context.Background())
	require.NoError(t, err)

	item, ok := got.Get(roster.PositionPitcher)
	require.True(t, ok)
	require.Equal(t, roster.Player{Name: "Shohei Ohtani", ID: 660271}, item)
	require.Equal(t, 3, got.Len())
}

func TestRosterRepository_RejectsCorruptDocuments(t *testing.T) {
	t.Parallel()

	docs := map[string]string{
		"not json":         `{"P": [`,
		"unknown position": `{"DH": ["Giancarlo Stanton", 519317]}`,
		"short entry":      `{"P": ["Gerrit Cole"]}`,
		"string id":        `{"P": ["Gerrit Cole", "543037"]}`,
		"fractional id":    `{"P": ["Gerrit Cole", 5430.5]}`,
		"empty name":       `{"P": ["", 543037]}`,
	}

	for name, doc := range docs {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "team.json"), []byte(doc), 0o644))

		repo := NewRosterRepository(dir, "team.json", nil)
		_, err := repo.Load(context.Background())
		if err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
		if errors.Is(err, roster.ErrNotFound) {
			t.Fatalf("%s: corrupt document must not look like a missing roster", name)
		}
	}
}

func TestRosterRepository_LoadsPlayerListedTwice(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := `{"P": ["Shohei Ohtani", 660271], "CF": ["Shohei Ohtani", 660271]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mlbfantasy.json"), []byte(doc), 0o644))

	repo := NewRosterRepository(dir, "mlbfantasy.json", nil)
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	ohtani := roster.Player{Name: "Shohei Ohtani", ID: 660271}
	for _, pos := range []roster.Position{roster.PositionPitcher, roster.PositionCenterField} {
		item, ok := got.Get(pos)
		require.True(t, ok, "missing %s", pos)
		require.Equal(t, ohtani, item)
	}

	// Other slots still reject the doubled-up player.
	require.ErrorIs(t, got.Set(roster.PositionLeftField, ohtani), roster.ErrDuplicatePlayer)
	require.NoError(t, repo.Save(context.Background(), got))
}
