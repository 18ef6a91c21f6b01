// Package console drives a scoreboard from line-oriented text commands.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
)

const usage = `commands:
  create <home> <away> [sport]
  update <home> <homeScore> <away> <awayScore>
  finish <home> <away>
  summary
  help
team names containing spaces must be double-quoted`

// ErrUsage is returned for malformed commands
var ErrUsage = errors.New("usage")

// Scoreboard is the registry surface the console drives
type Scoreboard interface {
	CreateMatch(ctx context.Context, homeID, awayID string, sport models.Sport) error
	UpdateScore(ctx context.Context, homeID string, newHome int, awayID string, newAway int) error
	FinishMatch(ctx context.Context, homeID, awayID string) error
	GetSummaries(ctx context.Context) ([]string, error)
}

// Console reads commands and writes their results
type Console struct {
	board        Scoreboard
	out          io.Writer
	defaultSport models.Sport
}

// New creates a console writing to out
func New(board Scoreboard, out io.Writer, defaultSport models.Sport) *Console {
	return &Console{
		board:        board,
		out:          out,
		defaultSport: defaultSport,
	}
}

// Run executes commands from in until EOF or ctx is cancelled.
// Command failures are printed and do not stop the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.Execute(ctx, line); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

// Execute runs a single command line
func (c *Console) Execute(ctx context.Context, line string) error {
	args, err := tokenize(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "create":
		return c.create(ctx, args[1:])
	case "update":
		return c.update(ctx, args[1:])
	case "finish":
		return c.finish(ctx, args[1:])
	case "summary":
		return c.summary(ctx)
	case "help":
		fmt.Fprintln(c.out, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func (c *Console) create(ctx context.Context, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("%w: create <home> <away> [sport]", ErrUsage)
	}

	sport := c.defaultSport
	if len(args) == 3 {
		sport = models.Sport(strings.ToLower(args[2]))
	}

	if err := c.board.CreateMatch(ctx, args[0], args[1], sport); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "ok")
	return nil
}

func (c *Console) update(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("%w: update <home> <homeScore> <away> <awayScore>", ErrUsage)
	}

	homeScore, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: home score %q is not a number", ErrUsage, args[1])
	}
	awayScore, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("%w: away score %q is not a number", ErrUsage, args[3])
	}

	if err := c.board.UpdateScore(ctx, args[0], homeScore, args[2], awayScore); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "ok")
	return nil
}

func (c *Console) finish(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: finish <home> <away>", ErrUsage)
	}

	if err := c.board.FinishMatch(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "ok")
	return nil
}

func (c *Console) summary(ctx context.Context) error {
	summaries, err := c.board.GetSummaries(ctx)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(c.out, "no active matches")
		return nil
	}
	for i, s := range summaries {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, s)
	}
	return nil
}

// tokenize splits on whitespace, keeping double-quoted runs together
func tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
		started bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if quoted {
		return nil, fmt.Errorf("%w: unterminated quote", ErrUsage)
	}
	if started {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
