// ABOUTME: chainctl subcommands: demo, showcase, interactive, stats, visualize
// ABOUTME: Each opens a session, runs against its managers and closes it

package main

import (
	"bufio"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/console"
	"github.com/2389/chainmgr/internal/render"
	"github.com/2389/chainmgr/internal/showcase"
)

// startupActive are the agents the interactive console activates on start.
var startupActive = []string{"a1", "a2", "a4"}

// withSession opens a session for the command and closes it afterwards.
func (a *app) withSession(cmd *cobra.Command, fn func(*session) error) (err error) {
	s, err := openSession(a.cfg, a.logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the quick three agent demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(s *session) error {
				sc := showcase.New(a.renderer(cmd), a.logger, showcase.WithManagerFactory(s.newManager))
				return sc.Demo(cmd.Context())
			})
		},
	}
}

func (a *app) showcaseCmd() *cobra.Command {
	var pause bool

	cmd := &cobra.Command{
		Use:   "showcase",
		Short: "Walk through the four interface chain scenarios",
		Long: `Walk through the basic chain, multiple chains, command handling and
scalability scenarios, then print the conclusion.

With --pause the walkthrough waits for Enter between scenarios. Without it,
showcase.pause from the config sets a delay; the default is no delay.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := a.renderer(cmd)
			hook := a.pauseHook(cmd, r, pause)
			return a.withSession(cmd, func(s *session) error {
				sc := showcase.New(r, a.logger,
					showcase.WithManagerFactory(s.newManager),
					showcase.WithPause(hook),
				)
				return sc.Run(cmd.Context())
			})
		},
	}
	cmd.Flags().BoolVar(&pause, "pause", false, "wait for Enter between scenarios")
	return cmd
}

// pauseHook returns the showcase pause: wait for Enter, sleep for the
// configured delay, or do nothing.
func (a *app) pauseHook(cmd *cobra.Command, r *render.Renderer, interactive bool) func(string) {
	if interactive {
		in := bufio.NewReader(cmd.InOrStdin())
		return func(prompt string) {
			r.Blank()
			r.Prompt(prompt)
			_, _ = in.ReadString('\n')
		}
	}

	delay := a.cfg.Showcase.Pause
	if delay <= 0 {
		return nil
	}
	return func(string) {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-cmd.Context().Done():
		case <-t.C:
		}
	}
}

func (a *app) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Manage the configured topology from a menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(s *session) error {
				m, err := s.seeded()
				if err != nil {
					return err
				}
				for _, id := range startupActive {
					if err := m.ActivateAgent(id); err != nil && !errors.Is(err, agent.ErrAgentNotFound) {
						return err
					}
				}
				if err := s.serveMetrics(cmd.Context(), m); err != nil {
					return err
				}

				var opts []console.Option
				if s.journal != nil {
					opts = append(opts, console.WithJournal(s.journal, s.auditLimit()))
				}
				c := console.New(m, a.renderer(cmd), cmd.InOrStdin(), a.logger, opts...)
				return c.Run(cmd.Context())
			})
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Seed the configured topology and print statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(s *session) error {
				m, err := s.seeded()
				if err != nil {
					return err
				}
				return printStats(a.renderer(cmd), m)
			})
		},
	}
}

func printStats(r *render.Renderer, m *agent.Manager) error {
	r.Statistics(m.Stats())
	r.Blank()

	for _, c := range m.ListChains() {
		cs, err := m.ChainStatus(c.ID())
		if err != nil {
			return err
		}
		name := fmt.Sprintf("Chain #%d", c.Index())
		if c.Label() != "" {
			name += " (" + c.Label() + ")"
		}
		r.Line("  %-28s %d interfaces, %d attached, %d unattached, %d active",
			name, cs.Interfaces, cs.Attached, cs.Unattached, cs.ActiveAttached)
	}
	return nil
}

func (a *app) visualizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visualize",
		Short: "Compare a single shared interface with interface chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.renderer(cmd).Architecture()
			return nil
		},
	}
}
