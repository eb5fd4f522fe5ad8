package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/riskibarqy/mlb-fantasy/internal/domain/roster"
	"github.com/riskibarqy/mlb-fantasy/internal/platform/logging"
	"github.com/riskibarqy/mlb-fantasy/internal/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const menuPrompt = "\nPick an action (display roster, display stats, update roster, display fantasy score, delete team or enter q to exit): "

const (
	cmdDisplayRoster = "display roster"
	cmdDisplayStats  = "display stats"
	cmdUpdateRoster  = "update roster"
	cmdDisplayScore  = "display fantasy score"
	cmdDeleteTeam    = "delete team"
	cmdQuit          = "q"
)

var tracer = otel.Tracer("mlb-fantasy/internal/interfaces/cli")

// Services are the use cases the session dispatches to.
type Services struct {
	Roster  *usecase.RosterService
	Search  *usecase.PlayerSearchService
	Scoring *usecase.ScoringService
	Stats   *usecase.PlayerStatsService
}

// Options wires the session to its terminal. Nil fields fall back to the
// process stdin, stdout, default logger and wall clock.
type Options struct {
	In          io.Reader
	Out         io.Writer
	ClearScreen bool
	Logger      *logging.Logger
	Now         func() time.Time
}

// Session is one interactive run over a single roster.
type Session struct {
	services Services
	io       *prompter
	clear    bool
	logger   *logging.Logger
	now      func() time.Time

	team    roster.Roster
	running bool
}

// NewSession builds a session. The screen is only cleared when ClearScreen is
// set and Out is a terminal.
func NewSession(services Services, opts Options) *Session {
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Session{
		services: services,
		io:       newPrompter(in, out),
		clear:    opts.ClearScreen && isTerminal(out),
		logger:   logger,
		now:      now,
		team:     roster.New(),
	}
}

// Team returns the roster currently held by the session.
func (s *Session) Team() roster.Roster {
	return s.team
}

// Run loads or bootstraps the roster and serves commands until the user
// quits, deletes the team, or the input ends.
func (s *Session) Run(ctx context.Context) error {
	proceed, err := s.bootstrap(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if !proceed {
		return nil
	}

	s.running = true
	for s.running {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := s.io.ask(menuPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.DebugContext(ctx, "input closed, ending session")
				return nil
			}
			return err
		}

		if err := s.dispatch(ctx, normalizeCommand(raw)); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *Session) dispatch(ctx context.Context, command string) (err error) {
	s.io.println()

	handler, ok := s.handlers()[command]
	if !ok {
		s.io.println("Please choose one of the options")
		return nil
	}

	ctx, span := tracer.Start(ctx, "cli.Session.Command")
	span.SetAttributes(attribute.String("cli.command", command))
	defer func() {
		if err != nil && !errors.Is(err, io.EOF) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	s.logger.DebugContext(ctx, "command received", "command", command)
	return handler(ctx)
}

func (s *Session) handlers() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		cmdDisplayRoster: func(context.Context) error {
			s.clearScreen()
			s.printRoster()
			return nil
		},
		cmdDisplayStats: func(ctx context.Context) error {
			s.clearScreen()
			return s.displayStats(ctx)
		},
		cmdUpdateRoster: func(ctx context.Context) error {
			s.clearScreen()
			return s.updateRoster(ctx)
		},
		cmdDisplayScore: s.displayScore,
		cmdDeleteTeam: func(ctx context.Context) error {
			s.clearScreen()
			return s.deleteTeam(ctx)
		},
		cmdQuit: func(context.Context) error {
			s.clearScreen()
			s.running = false
			return nil
		},
	}
}

// bootstrap loads the saved roster or offers to build one. It returns false
// when the user declines and the session should end.
func (s *Session) bootstrap(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "cli.Session.Bootstrap")
	defer span.End()

	team, exists, err := s.services.Roster.Load(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		s.team = team
		s.io.println("Fantasy team loaded successfully.")
		return true, nil
	}

	for {
		answer, err := s.io.ask("\n" + s.services.Roster.Location() + " was not found, would you like to create a new team? (Y/N): ")
		if err != nil {
			return false, err
		}

		switch normalizeAnswer(answer) {
		case "Y":
			built, err := s.buildTeam(ctx)
			if err != nil {
				if errors.Is(err, errBuildCancelled) {
					s.io.println("\nEnding script.")
					return false, nil
				}
				return false, err
			}
			if err := s.services.Roster.Create(ctx, built); err != nil {
				return false, err
			}
			s.team = built
			s.io.println("\nFantasy team created.")
			return true, nil
		case "N":
			s.io.println("\nEnding script.")
			return false, nil
		default:
			s.io.println("Please answer Y/N")
		}
	}
}

func (s *Session) deleteTeam(ctx context.Context) error {
	if err := s.services.Roster.Delete(ctx); err != nil {
		return err
	}
	s.team = roster.New()
	s.running = false
	s.io.println("Fantasy team deleted.")
	return nil
}

func (s *Session) clearScreen() {
	if s.clear {
		s.io.printf("%s", clearSequence)
	}
}
