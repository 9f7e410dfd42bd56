// ABOUTME: Interactive menu loop over an agent manager
// ABOUTME: Reads choices line by line and writes every change through manager operations

package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/render"
	"github.com/2389/chainmgr/internal/store"
)

const shutdownMessage = "Shutting down agent interface chain manager..."

// Console drives one manager from a line oriented input.
type Console struct {
	manager    *agent.Manager
	r          *render.Renderer
	journal    store.Journal
	auditLimit int
	logger     *slog.Logger

	in    io.Reader
	lines <-chan string
}

// Option configures a Console.
type Option func(*Console)

// WithJournal enables the audit log view, showing up to limit entries.
func WithJournal(j store.Journal, limit int) Option {
	return func(c *Console) {
		c.journal = j
		c.auditLimit = limit
	}
}

// New creates a console reading choices from in.
func New(m *agent.Manager, r *render.Renderer, in io.Reader, logger *slog.Logger, opts ...Option) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Console{
		manager: m,
		r:       r,
		logger:  logger.With("component", "console"),
		in:      in,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// scanLines feeds input lines to a channel so reads can be abandoned when
// the context ends. The channel closes at EOF or once done is closed.
func scanLines(in io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case <-done:
				return
			default:
			}
			select {
			case ch <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}

// errQuit ends the loop normally.
var errQuit = errors.New("quit")

// readLine returns the next trimmed line. It returns errQuit at EOF and
// the context error on cancellation.
func (c *Console) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", errQuit
		}
		return strings.TrimSpace(line), nil
	}
}

func (c *Console) ask(ctx context.Context, prompt string) (string, error) {
	c.r.Prompt(prompt)
	return c.readLine(ctx)
}

// Run shows the dashboard and handles choices until quit, EOF or ctx
// cancellation. Interruption is a normal exit and returns nil.
func (c *Console) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	c.lines = scanLines(c.in, done)

	for {
		c.r.Dashboard(c.manager.Snapshot())
		c.r.Menu()

		choice, err := c.ask(ctx, "Enter choice: ")
		if err == nil {
			err = c.handle(ctx, strings.ToLower(choice))
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, errQuit), errors.Is(err, context.Canceled):
			c.r.Blank()
			c.r.Success(shutdownMessage)
			return nil
		default:
			return err
		}
	}
}

func (c *Console) handle(ctx context.Context, choice string) error {
	switch choice {
	case "q":
		return errQuit
	case "1":
		return c.setStatus(ctx, "Enter agent ID to activate: ", true)
	case "2":
		return c.setStatus(ctx, "Enter agent ID to deactivate: ", false)
	case "3":
		c.r.Clear()
		c.r.Header()
		c.r.Statistics(c.manager.Stats())
		c.r.Blank()
		_, err := c.ask(ctx, "  Press Enter to return...")
		return err
	case "4":
		c.manager.ToggleAllAgents()
		c.r.Success("All agents toggled")
		return c.pause(ctx)
	case "5":
		return nil
	case "6":
		return c.execute(ctx)
	case "7":
		return c.auditLog(ctx)
	default:
		c.r.Failure("Invalid choice")
		return c.pause(ctx)
	}
}

func (c *Console) pause(ctx context.Context) error {
	_, err := c.ask(ctx, "Press Enter to continue...")
	return err
}

func (c *Console) setStatus(ctx context.Context, prompt string, activate bool) error {
	id, err := c.ask(ctx, prompt)
	if err != nil {
		return err
	}

	if activate {
		err = c.manager.ActivateAgent(id)
	} else {
		err = c.manager.DeactivateAgent(id)
	}

	switch {
	case errors.Is(err, agent.ErrAgentNotFound):
		c.r.Failure("Agent %s not found", id)
	case err != nil:
		c.r.Failure("%v", err)
	case activate:
		c.r.Success("Agent %s activated", id)
	default:
		c.r.Notice("Agent %s deactivated", id)
	}
	return c.pause(ctx)
}

func (c *Console) execute(ctx context.Context) error {
	ifaceID, err := c.ask(ctx, "Enter interface ID: ")
	if err != nil {
		return err
	}
	name, err := c.ask(ctx, "Enter command: ")
	if err != nil {
		return err
	}
	raw, err := c.ask(ctx, "Enter arguments: ")
	if err != nil {
		return err
	}

	out, err := c.manager.ExecuteCommand(ctx, ifaceID, name, ParseArgs(raw)...)
	if err != nil {
		c.r.Failure("%s on %s failed: %v", name, ifaceID, err)
	} else {
		c.r.Success("%s → %v", name, out)
	}
	return c.pause(ctx)
}

func (c *Console) auditLog(ctx context.Context) error {
	if c.journal == nil {
		c.r.Failure("Audit journal is disabled")
		return c.pause(ctx)
	}

	entries, err := c.journal.ListAuditLog(ctx, store.AuditFilter{Limit: c.auditLimit})
	if err != nil {
		c.logger.Warn("listing audit log", "error", err)
		c.r.Failure("Could not read audit log: %v", err)
		return c.pause(ctx)
	}
	c.r.Clear()
	c.r.AuditLog(entries)
	c.r.Blank()
	return c.pause(ctx)
}

// ParseArgs splits a command argument line on whitespace. A field opening
// with a double quote runs to the next double quote and stays a string,
// spaces included; an unterminated quote takes the rest of the line.
// Unquoted integers and floats are converted.
func ParseArgs(raw string) []any {
	var args []any
	rest := strings.TrimSpace(raw)
	for rest != "" {
		if rest[0] == '"' {
			quoted, tail, found := strings.Cut(rest[1:], `"`)
			if !found {
				quoted, tail = rest[1:], ""
			}
			args = append(args, quoted)
			rest = strings.TrimSpace(tail)
			continue
		}

		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		args = append(args, convert(rest[:end]))
		rest = strings.TrimSpace(rest[end:])
	}
	return args
}

func convert(field string) any {
	if n, err := strconv.Atoi(field); err == nil {
		return n
	}
	if x, err := strconv.ParseFloat(field, 64); err == nil {
		return x
	}
	return field
}
