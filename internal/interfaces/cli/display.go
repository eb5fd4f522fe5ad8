package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/mlb-fantasy/internal/usecase"
)

const (
	statsDivider  = "======================================"
	scoringSource = "https://support.espn.com/hc/en-us/articles/360057163871-Standard-Scoring-for-Public-Baseball-leagues"
)

func (s *Session) printRoster() {
	s.io.println("Current fantasy team roster:")
	s.io.println()
	for _, entry := range s.team.Entries() {
		s.io.printf("Pos: %s\nPlayer name and ID: %s, %d\n\n", entry.Position, entry.Player.Name, entry.Player.ID)
	}
}

// displayStats pages through the season summary of every rostered player.
func (s *Session) displayStats(ctx context.Context) error {
	s.io.printf("FANTASY TEAM SEASON STATS AS OF %s\n", s.now().Format("01/02/06"))

	for _, entry := range s.team.Entries() {
		summary, err := s.services.Stats.SeasonSummary(ctx, entry.Player)
		if err != nil {
			return err
		}

		s.io.println(statsDivider)
		s.io.println()
		s.io.printf("Player name: %s\n\n", entry.Player.Name)
		s.io.println("Stats:")
		s.printSummary(summary)
		s.io.println(statsDivider)

		if _, err := s.io.ask("Press Enter to continue paging"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) printSummary(summary usecase.PlayerSummary) {
	if len(summary.Sections) == 0 {
		s.io.println("No season stats available.")
		return
	}
	for _, section := range summary.Sections {
		s.io.printf("Season %s", groupTitle(section.Group))
		if section.Season != "" {
			s.io.printf(" (%s)", section.Season)
		}
		s.io.println()
		for _, key := range section.Stats.Keys() {
			s.io.printf("%s: %s\n", key, formatStat(section.Stats[key]))
		}
		s.io.println()
	}
}

func (s *Session) displayScore(ctx context.Context) error {
	s.io.println("\nFetching score...")
	s.io.println("\nScoring guidelines based on ESPN's head-to-head scoring guidelines for public leagues")
	s.io.println("\n More info: " + scoringSource)

	report, err := s.services.Scoring.Score(ctx, s.team)
	if err != nil {
		return err
	}

	for _, line := range report.Lines {
		s.io.printf("\n%s fpts: %s\n", line.Label(), formatPoints(line.Points))
	}
	s.io.printf("\nThe current fpts for your overall roster is: %s\n", formatPoints(report.Total))
	return nil
}

func groupTitle(group fantasy.StatGroup) string {
	name := string(group)
	if name == "" {
		return "Stats"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatStat(v any) string {
	switch value := v.(type) {
	case nil:
		return "-"
	case float64:
		return formatPoints(value)
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

