package fantasy

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMissingStat = errors.New("stat missing from block")
	ErrInvalidStat = errors.New("stat is not numeric")
)

// StatGroup is the remote stat family a block belongs to.
type StatGroup string

const (
	StatGroupHitting  StatGroup = "hitting"
	StatGroupPitching StatGroup = "pitching"
	StatGroupFielding StatGroup = "fielding"
)

func (g StatGroup) Label() string {
	switch g {
	case StatGroupPitching:
		return "Pitcher"
	case StatGroupHitting:
		return "Hitter"
	default:
		if g == "" {
			return ""
		}
		return strings.ToUpper(string(g[:1])) + string(g[1:])
	}
}

// StatBlock is one season stat object as returned by the stats provider.
// Values are kept as decoded; callers read them through Number.
type StatBlock map[string]any

func (b StatBlock) Number(key string) (float64, error) {
	raw, ok := b[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingStat, key)
	}

	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		out, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", ErrInvalidStat, key, v.String())
		}
		return out, nil
	case string:
		out, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", ErrInvalidStat, key, v)
		}
		return out, nil
	default:
		return 0, fmt.Errorf("%w: %s has type %T", ErrInvalidStat, key, raw)
	}
}

// Keys returns stat names sorted for stable display.
func (b StatBlock) Keys() []string {
	out := make([]string, 0, len(b))
	for key := range b {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Line is one scored stat group for one rostered player.
type Line struct {
	Position   string
	PlayerID   int64
	PlayerName string
	Group      StatGroup
	Points     float64
}

func (l Line) Label() string {
	return l.Group.Label() + ": " + l.PlayerName
}
