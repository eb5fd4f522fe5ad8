package file

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

// RosterRepository stores a roster as one JSON document keyed by position,
// each value being a [fullName, id] pair.
type RosterRepository struct {
	dir    string
	path   string
	logger *logging.Logger
}

func NewRosterRepository(dir, filename string, logger *logging.Logger) *RosterRepository {
	if logger == nil {
		logger = logging.Default()
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	return &RosterRepository{
		dir:    dir,
		path:   filepath.Join(dir, strings.TrimSpace(filename)),
		logger: logger,
	}
}

func (r *RosterRepository) Name() string {
	return r.path
}

func (r *RosterRepository) Load(ctx context.Context) (roster.Roster, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, crerr.WithSecondaryError(crerr.Wrapf(roster.ErrNotFound, "load roster %s", r.path), err)
		}
		return nil, crerr.Wrapf(err, "read roster %s", r.path)
	}

	out, err := r.decodeRoster(ctx, raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "decode roster %s", r.path)
	}

	r.logger.DebugContext(ctx, "roster loaded", "path", r.path, "slots", out.Len())
	return out, nil
}

// Save replaces the blob through a temp file and a rename in the same
// directory.
func (r *RosterRepository) Save(ctx context.Context, item roster.Roster) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create roster dir %s", r.dir)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := encodeRoster(buf, item); err != nil {
		return crerr.Wrap(err, "encode roster")
	}

	tmp, err := os.CreateTemp(r.dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return crerr.Wrap(err, "create temp roster file")
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(buf.B); err != nil {
		_ = tmp.Close()
		cleanup()
		return crerr.Wrap(err, "write temp roster file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return crerr.Wrap(err, "sync temp roster file")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return crerr.Wrap(err, "close temp roster file")
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		cleanup()
		return crerr.Wrapf(err, "replace roster %s", r.path)
	}

	r.logger.InfoContext(ctx, "roster saved", "path", r.path, "slots", item.Len())
	return nil
}

func (r *RosterRepository) Delete(ctx context.Context) error {
	if err := os.Remove(r.path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			r.logger.WarnContext(ctx, "roster already deleted", "path", r.path)
			return nil
		}
		return crerr.Wrapf(err, "delete roster %s", r.path)
	}

	r.logger.InfoContext(ctx, "roster deleted", "path", r.path)
	return nil
}

func encodeRoster(buf *bytebufferpool.ByteBuffer, item roster.Roster) error {
	doc := make(map[string][2]any, item.Len())
	for _, entry := range item.Entries() {
		doc[entry.Position.String()] = [2]any{entry.Player.Name, entry.Player.ID}
	}

	raw, err := sonic.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = buf.Write(raw)
	return err
}

// decodeRoster accepts a player listed under more than one position. Only new
// assignments go through Roster.Set.
func (r *RosterRepository) decodeRoster(ctx context.Context, raw []byte) (roster.Roster, error) {
	var doc map[string][]any
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	out := roster.New()
	for key, value := range doc {
		pos, err := roster.ParsePosition(key)
		if err != nil {
			return nil, err
		}
		item, err := decodePlayer(value)
		if err != nil {
			return nil, crerr.Wrapf(err, "position %s", pos)
		}
		if holder, ok := out.HoldsPlayer(item.ID); ok {
			r.logger.WarnContext(ctx, "player listed under more than one position",
				"path", r.path, "player", item.String(), "position", pos.String(), "also", holder.String())
		}
		out[pos] = item
	}
	return out, nil
}

func decodePlayer(value []any) (roster.Player, error) {
	if len(value) != 2 {
		return roster.Player{}, crerr.Newf("expected [name, id], got %d elements", len(value))
	}
	name, ok := value[0].(string)
	if !ok {
		return roster.Player{}, crerr.Newf("player name has type %T", value[0])
	}
	id, ok := value[1].(float64)
	if !ok || id != float64(int64(id)) {
		return roster.Player{}, crerr.Newf("player id %v is not an integer", value[1])
	}

	item := roster.Player{Name: name, ID: int64(id)}
	if err := item.Validate(); err != nil {
		return roster.Player{}, err
	}
	return item, nil
}
