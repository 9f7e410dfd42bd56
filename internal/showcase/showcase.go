// ABOUTME: Scripted walkthroughs of the manager: the quick demo and four scenarios
// ABOUTME: Each script builds a fresh manager and renders what it did

package showcase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/builtins"
	"github.com/2389/chainmgr/internal/chain"
	"github.com/2389/chainmgr/internal/render"
)

// Showcase runs the scripts against managers built by its factory.
type Showcase struct {
	r          *render.Renderer
	logger     *slog.Logger
	pause      func(prompt string)
	newManager func() *agent.Manager
}

// Option configures a Showcase.
type Option func(*Showcase)

// WithPause sets the hook called between scenarios. The prompt is the
// text to show the user; the hook decides whether to wait.
func WithPause(fn func(prompt string)) Option {
	return func(s *Showcase) {
		if fn != nil {
			s.pause = fn
		}
	}
}

// WithManagerFactory sets how each script obtains its manager.
func WithManagerFactory(fn func() *agent.Manager) Option {
	return func(s *Showcase) {
		if fn != nil {
			s.newManager = fn
		}
	}
}

// New creates a showcase writing to r.
func New(r *render.Renderer, logger *slog.Logger, opts ...Option) *Showcase {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Showcase{
		r:      r,
		logger: logger.With("component", "showcase"),
		pause:  func(string) {},
	}
	s.newManager = func() *agent.Manager { return agent.NewManager(s.logger) }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Demo runs the quick three agent, one chain script.
func (s *Showcase) Demo(ctx context.Context) error {
	m := s.newManager()

	agents := []struct{ id, name string }{
		{"a1", "DataCollector"},
		{"a2", "Analyzer"},
		{"a3", "Reporter"},
	}
	for _, a := range agents {
		if err := m.RegisterAgent(agent.New(a.id, a.name)); err != nil {
			return err
		}
	}

	c := m.CreateInterfaceChain()
	ifaces := []struct{ id, name string }{
		{"i1", "InputInterface"},
		{"i2", "ProcessingInterface"},
		{"i3", "OutputInterface"},
	}
	for _, i := range ifaces {
		if err := m.AddInterface(c.ID(), chain.NewInterface(i.id, i.name)); err != nil {
			return err
		}
	}

	for n, a := range agents {
		if _, err := m.AttachAgentToInterface(a.id, ifaces[n].id); err != nil {
			return err
		}
	}
	for _, a := range agents {
		if err := m.ActivateAgent(a.id); err != nil {
			return err
		}
	}

	snap := m.Snapshot()

	s.r.Clear()
	s.r.Blank()
	s.r.Banner(render.Cyan,
		"AGENT INTERFACE CHAIN MANAGER v1.0",
		"The Next Evolution of TUIs for Agent Management",
	)
	s.r.Blank()
	s.r.Tinted(render.Green, "Managing all agents through interface chains reduces risk.")
	s.r.Blank()
	s.r.Tinted(render.Green, "No single interface point of failure.")
	s.r.Blank()

	s.r.AgentsBox(snap.Agents)
	s.r.Blank()
	s.r.ChainBox(snap.Chains[0])

	s.r.Blank()
	s.r.Success("System initialized successfully")
	s.r.Success("Interface chain established")
	s.r.Success("Agents distributed across interfaces")
	s.r.Blank()
	return nil
}

// Run executes the four scenarios and the conclusion, pausing between them.
func (s *Showcase) Run(ctx context.Context) error {
	s.r.Clear()
	s.r.Banner(render.Cyan,
		"AGENT INTERFACE CHAIN MANAGER - Comprehensive Demonstration",
		"The Next Evolution of TUIs for Agent Management",
	)
	s.r.Blank()
	s.r.Tinted(render.Magenta, "Core Principle:")
	s.r.Line("  Managing all agents through ONE interface is a risk.")
	s.r.Line("  Interface chains distribute risk and enable scalability.")
	s.r.Blank()
	s.pause("Press Enter to start demonstrations...")

	scenarios := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"basic chain", s.BasicChain},
		{"multiple chains", s.MultipleChains},
		{"command handling", s.CommandHandling},
		{"scalability", s.Scalability},
	}
	for n, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.logger.Debug("running scenario", "name", sc.name)
		if err := sc.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", sc.name, err)
		}
		if n < len(scenarios)-1 {
			s.pause("Press Enter for next demo...")
		}
	}

	s.Conclusion()
	return nil
}

func (s *Showcase) title(text string) {
	s.r.Clear()
	s.r.Line("%s", render.Paint(render.Cyan, "══════════════════════════════════════════════════════════════════════"))
	s.r.Tinted(render.Bold, "%s", text)
	s.r.Line("%s", render.Paint(render.Cyan, "══════════════════════════════════════════════════════════════════════"))
}

func (s *Showcase) result(lines ...string) {
	s.r.Blank()
	for _, l := range lines {
		s.r.Tinted(render.Green, "%s", l)
	}
	s.r.Blank()
}

// BasicChain builds one three stage pipeline chain.
func (s *Showcase) BasicChain(ctx context.Context) error {
	m := s.newManager()

	s.title("DEMO 1: Basic Interface Chain")
	s.r.Blank()
	s.r.Line("Setting up a simple 3-stage processing pipeline...")
	s.r.Blank()

	agents := []*agent.Agent{
		agent.New("input", "InputAgent", agent.WithMetadata(map[string]any{"role": "data_intake"})),
		agent.New("process", "ProcessorAgent", agent.WithMetadata(map[string]any{"role": "transformation"})),
		agent.New("output", "OutputAgent", agent.WithMetadata(map[string]any{"role": "delivery"})),
	}
	for _, a := range agents {
		if err := m.RegisterAgent(a); err != nil {
			return err
		}
		s.r.Line("  ✓ Registered %s", a.Name())
	}

	s.r.Blank()
	s.r.Line("Building interface chain...")
	s.r.Blank()

	c := m.CreateInterfaceChain()
	ifaces := []*chain.Interface{
		chain.NewInterface("i1", "DataIngestion"),
		chain.NewInterface("i2", "Processing"),
		chain.NewInterface("i3", "OutputDelivery"),
	}
	for _, iface := range ifaces {
		if err := m.AddInterface(c.ID(), iface); err != nil {
			return err
		}
		s.r.Line("  ✓ Added interface: %s", iface.Name())
	}

	s.r.Blank()
	s.r.Line("Attaching agents to interfaces...")
	s.r.Blank()

	for n, a := range agents {
		if _, err := m.AttachAgentToInterface(a.ID(), ifaces[n].ID()); err != nil {
			return err
		}
		if err := m.ActivateAgent(a.ID()); err != nil {
			return err
		}
		s.r.Line("  ✓ %s ← %s", a.Name(), ifaces[n].Name())
	}

	s.result(
		"Result: Single chain with 3 interfaces managing 3 agents",
		"No single point of failure in the processing pipeline.",
	)
	return nil
}

// MultipleChains builds a production chain and a monitoring chain.
func (s *Showcase) MultipleChains(ctx context.Context) error {
	m := s.newManager()

	s.title("DEMO 2: Multiple Independent Interface Chains")
	s.r.Blank()
	s.r.Line("Demonstrating isolation and independence...")
	s.r.Blank()

	pipelines := []struct {
		heading string
		label   string
		agents  [][2]string
		ifaces  [][2]string
	}{
		{
			heading: "Chain 1: Production Pipeline",
			label:   "Production",
			agents:  [][2]string{{"p1", "ProductionCollector"}, {"p2", "ProductionProcessor"}},
			ifaces:  [][2]string{{"pi1", "ProdIngestion"}, {"pi2", "ProdProcessing"}},
		},
		{
			heading: "Chain 2: Monitoring Pipeline",
			label:   "Monitoring",
			agents:  [][2]string{{"m1", "HealthMonitor"}, {"m2", "AlertAgent"}},
			ifaces:  [][2]string{{"mi1", "HealthCheck"}, {"mi2", "Alerting"}},
		},
	}

	for n, p := range pipelines {
		if n > 0 {
			s.r.Blank()
		}
		s.r.Tinted(render.Yellow, "%s", p.heading)

		c := m.CreateInterfaceChain()
		c.SetLabel(p.label)
		for _, a := range p.agents {
			if err := m.RegisterAgent(agent.New(a[0], a[1])); err != nil {
				return err
			}
		}
		for _, i := range p.ifaces {
			if err := m.AddInterface(c.ID(), chain.NewInterface(i[0], i[1])); err != nil {
				return err
			}
		}
		for k, a := range p.agents {
			if _, err := m.AttachAgentToInterface(a[0], p.ifaces[k][0]); err != nil {
				return err
			}
			s.r.Line("  → %s ← %s", p.ifaces[k][1], a[1])
		}
	}

	s.result(
		fmt.Sprintf("Result: %d independent chains operating in parallel", m.Stats().TotalChains),
		"Issues in one chain don't affect the other.",
	)
	return nil
}

// CommandHandling registers the pipeline commands on one interface and
// runs each of them through the manager.
func (s *Showcase) CommandHandling(ctx context.Context) error {
	m := s.newManager()

	s.title("DEMO 3: Command Handling")
	s.r.Blank()
	s.r.Line("Interfaces can handle custom commands...")
	s.r.Blank()

	reg := builtins.NewRegistry(s.logger)
	if err := reg.RegisterPack(builtins.PipelinePack()); err != nil {
		return err
	}

	iface := chain.NewInterface("cmd1", "CommandInterface")
	if err := reg.Install(iface, "process", "validate", "transform"); err != nil {
		return err
	}
	c := m.CreateInterfaceChain()
	if err := m.AddInterface(c.ID(), iface); err != nil {
		return err
	}

	s.r.Line("Registered commands:")
	for _, name := range iface.Commands() {
		s.r.Line("  • %s", name)
	}

	s.r.Blank()
	s.r.Line("Executing commands:")

	const testData = "sample data"
	for _, name := range []string{"validate", "transform", "process"} {
		out, err := m.ExecuteCommand(ctx, iface.ID(), name, testData)
		if err != nil {
			return err
		}
		s.r.Line("  %s('%s') → %v", name, testData, out)
	}

	s.result(
		"Result: Flexible command system for interface operations",
		"Each interface can define its own command set.",
	)
	return nil
}

// Scalability builds five chains of three attached agents each.
func (s *Showcase) Scalability(ctx context.Context) error {
	const (
		numChains      = 5
		agentsPerChain = 3
	)
	m := s.newManager()

	s.title("DEMO 4: Scalability")
	s.r.Blank()
	s.r.Line("Scaling to multiple chains and agents...")
	s.r.Blank()

	for cn := 1; cn <= numChains; cn++ {
		c := m.CreateInterfaceChain()
		for an := 1; an <= agentsPerChain; an++ {
			agentID := fmt.Sprintf("a%d_%d", cn, an)
			if err := m.RegisterAgent(agent.New(agentID, fmt.Sprintf("Agent_%d_%d", cn, an))); err != nil {
				return err
			}

			ifaceID := fmt.Sprintf("i%d_%d", cn, an)
			if err := m.AddInterface(c.ID(), chain.NewInterface(ifaceID, fmt.Sprintf("Interface_%d_%d", cn, an))); err != nil {
				return err
			}
			if _, err := m.AttachAgentToInterface(agentID, ifaceID); err != nil {
				return err
			}
		}
	}

	st := m.Stats()
	s.r.Line("  Created: %d chains", st.TotalChains)
	s.r.Line("  Total agents: %d", st.TotalAgents)
	s.r.Line("  Total interfaces: %d", st.TotalInterfaces)
	s.r.Line("  Agents per chain: %d", agentsPerChain)

	s.result(
		fmt.Sprintf("Result: System scales to %d agents across %d chains", st.TotalAgents, st.TotalChains),
		"Architecture supports horizontal scaling without bottlenecks.",
	)
	return nil
}

// Conclusion writes the closing takeaways.
func (s *Showcase) Conclusion() {
	s.r.Clear()
	s.r.Banner(render.Cyan, "CONCLUSION")
	s.r.Blank()
	s.r.Tinted(render.Bold, "Key Takeaways:")
	s.r.Blank()

	takeaways := [][2]string{
		{"Risk Distribution", "Interface chains eliminate single points of failure"},
		{"Scalability", "Add new chains without disrupting existing ones"},
		{"Isolation", "Problems in one chain don't cascade to others"},
		{"Flexibility", "Each interface can have specialized capabilities"},
		{"Evolution", "This represents the next generation of TUI design"},
	}
	for n, t := range takeaways {
		s.r.Line("  %d. %s", n+1, render.Paint(render.Green, t[0]))
		s.r.Line("     %s", t[1])
		s.r.Blank()
	}
	s.r.Tinted(render.Magenta, "Interface chains: The crux of managing all agents safely.")
	s.r.Blank()
}
