// ABOUTME: Views over agent snapshots: agent lists, chains, stats, menu
// ABOUTME: Reads only snapshot values and journal entries, never the manager

package render

import (
	"fmt"
	"strings"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/store"
)

func statusMark(s agent.Status) string {
	if s == agent.StatusActive {
		return Paint(Green, "●")
	}
	return Paint(Yellow, "○")
}

func statusTone(s agent.Status) Tone {
	if s == agent.StatusActive {
		return Green
	}
	return Yellow
}

// chainTitle is "INTERFACE CHAIN #n" with the label appended when set.
func chainTitle(c agent.ChainView) string {
	title := fmt.Sprintf("INTERFACE CHAIN #%d", c.Index)
	if c.Label != "" {
		title += ": " + c.Label
	}
	return title
}

// AgentsBox writes the compact agent box used by the demo.
func (r *Renderer) AgentsBox(agents []agent.AgentView) {
	lines := make([]string, 0, len(agents))
	for _, a := range agents {
		status := Paint(statusTone(a.Status), "["+string(a.Status)+"]")
		lines = append(lines, fmt.Sprintf("  %s %s (ID: %s)", status, a.Name, a.ID))
	}
	if len(lines) == 0 {
		lines = []string{"  No agents registered"}
	}
	r.Box("AGENTS", lines)
}

// ChainBox writes the compact chain box used by the demo.
func (r *Renderer) ChainBox(c agent.ChainView) {
	lines := make([]string, 0, 2*len(c.Interfaces))
	for i, iface := range c.Interfaces {
		line := fmt.Sprintf("  [%s] %s", iface.ID, iface.Name)
		if iface.AgentID != "" {
			line += " → " + iface.AgentName
		}
		lines = append(lines, line)
		if i < len(c.Interfaces)-1 {
			lines = append(lines, "   ↓ ")
		}
	}
	if len(lines) == 0 {
		lines = []string{"  No interfaces in chain"}
	}
	r.Box("INTERFACE CHAIN", lines)
}

// Header writes the interactive banner.
func (r *Renderer) Header() {
	r.Banner(Cyan,
		"AGENT INTERFACE CHAIN MANAGER - Interactive TUI",
		"The Next Evolution of Agent Management Systems",
	)
	r.Blank()
}

// Dashboard writes the main interactive view.
func (r *Renderer) Dashboard(snap agent.Snapshot) {
	r.Clear()
	r.Header()

	r.Tinted(Magenta, "✦ CONCEPT: Interface Chains")
	r.Line("  Managing all agents through distributed interfaces eliminates")
	r.Line("  single points of failure. Each chain is independent yet coordinated.")
	r.Blank()

	r.Section("REGISTERED AGENTS")
	if len(snap.Agents) == 0 {
		r.Line("  No agents registered")
	}
	for _, a := range snap.Agents {
		info := ""
		if a.InterfaceID != "" {
			info = " → Interface: " + a.InterfaceName
		}
		r.Line("  %s %s (ID: %s)%s", statusMark(a.Status), Paint(Bold, a.Name), a.ID, info)
	}
	r.Blank()

	for _, c := range snap.Chains {
		r.Chain(c)
		r.Blank()
	}
}

// Chain writes one chain with arrows between interfaces.
func (r *Renderer) Chain(c agent.ChainView) {
	r.Section(chainTitle(c))
	if len(c.Interfaces) == 0 {
		r.Line("  No interfaces in chain")
		return
	}
	for i, iface := range c.Interfaces {
		info := Paint(Yellow, "(no agent)")
		if iface.AgentID != "" {
			info = statusMark(iface.AgentStatus) + " " + Paint(Green, iface.AgentName)
		}
		r.Line("  [%s] %s ← %s", iface.ID, Paint(Cyan, iface.Name), info)
		if i < len(c.Interfaces)-1 {
			r.Line("  ↓")
		}
	}
}

// Menu writes the interactive action list.
func (r *Renderer) Menu() {
	r.Section("ACTIONS")
	r.Line("  [1] Activate Agent     [2] Deactivate Agent")
	r.Line("  [3] Show Statistics    [4] Toggle All Agents")
	r.Line("  [5] Refresh View       [6] Execute Command")
	r.Line("  [7] Audit Log          [q] Quit")
	r.Rule(Cyan)
	r.Blank()
}

// Statistics writes the system statistics view.
func (r *Renderer) Statistics(st agent.Stats) {
	r.Banner(Cyan, "SYSTEM STATISTICS")
	r.Blank()

	r.Line("  Total Agents:           %d", st.TotalAgents)
	r.Line("  %s          %d", Paint(Green, "Active Agents:"), st.ActiveAgents)
	r.Line("  %s            %d", Paint(Yellow, "Idle Agents:"), st.IdleAgents)
	if st.OtherAgents > 0 {
		r.Line("  Other Status:           %d", st.OtherAgents)
	}
	r.Line("  Total Interface Chains: %d", st.TotalChains)
	r.Line("  Total Interfaces:       %d", st.TotalInterfaces)
	r.Line("  Attached Agents:        %d", st.AttachedAgents)
	r.Blank()

	r.Tinted(Magenta, "  Key Benefits:")
	r.Line("  • No single interface point of failure")
	r.Line("  • Distributed agent management")
	r.Line("  • Scalable chain architecture")
	r.Line("  • Independent yet coordinated operations")
}

// AuditLog writes journal entries, newest first as given.
func (r *Renderer) AuditLog(entries []store.AuditEntry) {
	r.Section("AUDIT LOG")
	if len(entries) == 0 {
		r.Line("  No events recorded")
		return
	}
	for _, e := range entries {
		r.Line("  %s", AuditLine(e))
	}
}

// AuditLine formats one journal entry on a single line.
func AuditLine(e store.AuditEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-18s", e.Timestamp.Local().Format("15:04:05.000"), e.Kind)

	field := func(key, val string) {
		if val != "" {
			fmt.Fprintf(&b, " %s=%s", key, val)
		}
	}
	field("agent", e.AgentID)
	field("interface", e.InterfaceID)
	field("command", e.Command)
	field("status", e.Status)
	field("previous", e.Previous)
	if e.Duration > 0 {
		fmt.Fprintf(&b, " took=%s", e.Duration)
	}

	line := b.String()
	if e.Error != "" {
		line += " " + Paint(Red, "error="+e.Error)
	}
	return line
}
