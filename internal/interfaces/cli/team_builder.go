package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
)

var errBuildCancelled = errors.New("team creation cancelled")

// buildTeam fills positions 1 through 9 in order. A position only advances
// once a candidate is accepted. Entering q at the query prompt cancels.
func (s *Session) buildTeam(ctx context.Context) (roster.Roster, error) {
	team := roster.New()

	s.io.println()
	for number := 1; number <= roster.SlotCount; number++ {
		pos, err := roster.PositionFromNumber(number)
		if err != nil {
			return nil, err
		}

		s.io.printf("\nNow choosing position: %s\n", pos)
		for {
			accepted, err := s.choosePosition(ctx, team, pos)
			if err != nil {
				return nil, err
			}
			if accepted {
				break
			}
		}
	}
	return team, nil
}

// choosePosition runs one lookup round for pos and reports whether a
// candidate was accepted.
func (s *Session) choosePosition(ctx context.Context, team roster.Roster, pos roster.Position) (bool, error) {
	query, err := s.io.ask("\nInput a player's first, last, or fullname: ")
	if err != nil {
		return false, err
	}
	if strings.EqualFold(strings.TrimSpace(query), cmdQuit) {
		return false, errBuildCancelled
	}

	candidates, err := s.services.Search.Search(ctx, query, pos)
	if err != nil {
		return false, err
	}

	for _, candidate := range candidates {
		s.io.printf("%s\n\n", candidate.PrimaryPosition)
		s.io.printf("Player name: %s\n\n", candidate.FullName)
		s.io.printf("Player ID: %d\n\n", candidate.ID)

		answer, err := s.io.ask("Would you like to add this player to your fantasy team? (Y/N): ")
		if err != nil {
			return false, err
		}

		switch normalizeAnswer(answer) {
		case "Y":
			if err := team.Set(pos, candidate.Player()); err != nil {
				if errors.Is(err, roster.ErrDuplicatePlayer) {
					s.io.printf("%s is already on your roster, choose another player.\n", candidate.FullName)
					continue
				}
				return false, err
			}
			return true, nil
		case "N":
			continue
		default:
			s.io.println("\n***Error: Please answer Y or N, restart lookup")
			return false, nil
		}
	}
	return false, nil
}
