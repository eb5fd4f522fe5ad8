package fantasy

import (
	"fmt"
	"math"
)

// Rules stores the per-stat weights for head-to-head points scoring.
type Rules struct {
	InningsPitched   float64
	HitsAllowed      float64
	EarnedRuns       float64
	WalksIssued      float64
	PitcherStrikeout float64
	Win              float64
	Loss             float64
	Save             float64

	Run          float64
	TotalBase    float64
	RBI          float64
	Walk         float64
	Strikeout    float64
	StolenBase   float64
	RoundingUnit float64
}

// DefaultRules mirrors ESPN's standard head-to-head points for public leagues.
func DefaultRules() Rules {
	return Rules{
		InningsPitched:   3,
		HitsAllowed:      -1,
		EarnedRuns:       -2,
		WalksIssued:      -1,
		PitcherStrikeout: 1,
		Win:              5,
		Loss:             -5,
		Save:             5,

		Run:          1,
		TotalBase:    1,
		RBI:          1,
		Walk:         1,
		Strikeout:    -1,
		StolenBase:   1,
		RoundingUnit: 100,
	}
}

type weightedStat struct {
	key    string
	weight float64
}

func (r Rules) pitchingWeights() []weightedStat {
	return []weightedStat{
		{key: "inningsPitched", weight: r.InningsPitched},
		{key: "hits", weight: r.HitsAllowed},
		{key: "earnedRuns", weight: r.EarnedRuns},
		{key: "intentionalWalks", weight: r.WalksIssued},
		{key: "strikeOuts", weight: r.PitcherStrikeout},
		{key: "wins", weight: r.Win},
		{key: "losses", weight: r.Loss},
		{key: "saves", weight: r.Save},
	}
}

func (r Rules) hittingWeights() []weightedStat {
	return []weightedStat{
		{key: "runs", weight: r.Run},
		{key: "totalBases", weight: r.TotalBase},
		{key: "rbi", weight: r.RBI},
		{key: "intentionalWalks", weight: r.Walk},
		{key: "strikeOuts", weight: r.Strikeout},
		{key: "stolenBases", weight: r.StolenBase},
	}
}

// PitchingPoints scores a pitching block, rounded to two decimals.
// inningsPitched is read as a plain decimal, so "6.1" counts as 6.1.
func PitchingPoints(block StatBlock, rules Rules) (float64, error) {
	total, err := weightedSum(block, rules.pitchingWeights())
	if err != nil {
		return 0, fmt.Errorf("pitching points: %w", err)
	}
	return Round(total, rules.RoundingUnit), nil
}

// HittingPoints scores a hitting block. Every input is a counting stat so
// the result is integral; no rounding is applied.
func HittingPoints(block StatBlock, rules Rules) (float64, error) {
	total, err := weightedSum(block, rules.hittingWeights())
	if err != nil {
		return 0, fmt.Errorf("hitting points: %w", err)
	}
	return total, nil
}

func Points(group StatGroup, block StatBlock, rules Rules) (float64, error) {
	switch group {
	case StatGroupPitching:
		return PitchingPoints(block, rules)
	case StatGroupHitting:
		return HittingPoints(block, rules)
	default:
		return 0, fmt.Errorf("no scoring rule for stat group %q", group)
	}
}

// Total sums the lines and rounds like a pitching line.
func Total(lines []Line, rules Rules) float64 {
	var total float64
	for _, line := range lines {
		total += line.Points
	}
	return Round(total, rules.RoundingUnit)
}

func Round(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Round(v*unit) / unit
}

func weightedSum(block StatBlock, weights []weightedStat) (float64, error) {
	var total float64
	for _, item := range weights {
		value, err := block.Number(item.key)
		if err != nil {
			return 0, err
		}
		total += value * item.weight
	}
	return total, nil
}
