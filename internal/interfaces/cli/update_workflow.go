package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	"github.com/riskibarqy/mlb-fantasy/internal/usecase"
)

// updateRoster replaces the player at one position. The roster is only
// persisted when a candidate is accepted.
func (s *Session) updateRoster(ctx context.Context) error {
	s.io.println("\nChoose the position to update in your roster: ")
	for _, pos := range roster.Positions() {
		if current, ok := s.team.Get(pos); ok {
			s.io.printf("%s (%s)\n", pos, current.Name)
			continue
		}
		s.io.printf("%s (empty)\n", pos)
	}

	pos, err := s.askPosition()
	if err != nil {
		return err
	}
	if pos == roster.PositionPitcher {
		s.io.println("\nTwo-way players can also play as pitchers.")
	}

	candidates, err := s.searchForUpdate(ctx, pos)
	if err != nil || candidates == nil {
		return err
	}

	changed, err := s.pickCandidate(ctx, pos, candidates)
	if err != nil {
		return err
	}
	if !changed {
		s.io.println("\nNo roster changes applied.")
		return nil
	}

	updated, _ := s.team.Get(pos)
	s.io.println("\nChanges applied to fantasy roster.")
	s.io.printf("New %s: %s\n", pos, updated)
	s.io.println("\nChanges saved.")
	return nil
}

func (s *Session) askPosition() (roster.Position, error) {
	for {
		raw, err := s.io.ask("\nPosition: ")
		if err != nil {
			return "", err
		}
		pos, err := roster.ParsePosition(raw)
		if err == nil {
			return pos, nil
		}
		s.io.println("\nPlease enter a valid position")
	}
}

// searchForUpdate loops until a query yields at least one eligible
// candidate. A nil result with a nil error means the user quit.
func (s *Session) searchForUpdate(ctx context.Context, pos roster.Position) ([]usecase.ExternalPlayer, error) {
	for {
		query, err := s.io.ask("\nSearch for a " + pos.String() + " player, or enter q to exit: ")
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(strings.TrimSpace(query), cmdQuit) {
			return nil, nil
		}

		candidates, err := s.services.Search.Search(ctx, query, pos)
		if err != nil {
			return nil, err
		}

		s.io.printf("\nSearch returned %d players who play as %s\n\n", len(candidates), pos)
		if len(candidates) > 0 {
			return candidates, nil
		}
		s.io.println("\nPlease search again: ")
	}
}

func (s *Session) pickCandidate(ctx context.Context, pos roster.Position, candidates []usecase.ExternalPlayer) (bool, error) {
	for _, candidate := range candidates {
		s.io.printf("Player name: %s\n\n", candidate.FullName)
		s.io.printf("Player ID: %d\n\n", candidate.ID)

	answerLoop:
		for {
			answer, err := s.io.ask("Would you like to add this player to your fantasy team? (Y/N) or enter q to exit: ")
			if err != nil {
				return false, err
			}

			switch normalizeAnswer(answer) {
			case "Y":
				err := s.services.Roster.Assign(ctx, s.team, pos, candidate.Player())
				if errors.Is(err, roster.ErrDuplicatePlayer) {
					s.io.printf("%s is already on your roster, choose another player.\n", candidate.FullName)
					break answerLoop
				}
				if err != nil {
					return false, err
				}
				return true, nil
			case "N":
				break answerLoop
			case "Q":
				return false, nil
			default:
				s.io.println("Please answer Y/N")
			}
		}
	}
	return false, nil
}
