// ABOUTME: Read-only views of manager state for rendering and metrics.
// ABOUTME: Snapshots are taken under one read lock so counts agree with the lists.

package agent

import (
	"fmt"

	"github.com/2389/chainmgr/internal/chain"
)

// Stats holds aggregate counts across the manager.
type Stats struct {
	TotalAgents     int
	ActiveAgents    int
	IdleAgents      int
	OtherAgents     int // neither active nor idle
	TotalChains     int
	TotalInterfaces int
	AttachedAgents  int
}

// ChainStatus summarizes one chain.
type ChainStatus struct {
	Interfaces     int
	Attached       int
	Unattached     int
	ActiveAttached int
}

// AgentView is a copy of one agent's public state.
type AgentView struct {
	ID            string
	Name          string
	Status        Status
	Metadata      map[string]any
	InterfaceID   string // empty when unattached
	InterfaceName string
}

// InterfaceView is a copy of one interface's public state.
type InterfaceView struct {
	ID          string
	Name        string
	Commands    []string
	AgentID     string // empty when unattached
	AgentName   string
	AgentStatus Status
}

// ChainView is a copy of one chain and its ordered interfaces.
type ChainView struct {
	ID         string
	Index      int
	Label      string
	Interfaces []InterfaceView
}

// Snapshot is a consistent copy of the manager for the presentation layer.
type Snapshot struct {
	Agents []AgentView
	Chains []ChainView
	Stats  Stats
}

// Stats returns aggregate counts. An empty manager yields zero values.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statsLocked()
}

func (m *Manager) statsLocked() Stats {
	st := Stats{
		TotalAgents:    len(m.agents),
		TotalChains:    len(m.chains),
		AttachedAgents: len(m.attachments),
	}
	for _, a := range m.agents {
		switch a.Status() {
		case StatusActive:
			st.ActiveAgents++
		case StatusIdle:
			st.IdleAgents++
		default:
			st.OtherAgents++
		}
	}
	for _, c := range m.chains {
		st.TotalInterfaces += c.Len()
	}
	return st
}

// ChainStatus summarizes the chain with chainID.
func (m *Manager) ChainStatus(chainID string) (ChainStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.chains[chainID]
	if !ok {
		return ChainStatus{}, fmt.Errorf("%w: %s", ErrChainNotFound, chainID)
	}

	var cs ChainStatus
	for iface := range c.Traverse() {
		cs.Interfaces++
		agentID, ok := m.attachedLocked(iface)
		if !ok {
			cs.Unattached++
			continue
		}
		cs.Attached++
		if a, ok := m.agents[agentID]; ok && a.IsActive() {
			cs.ActiveAttached++
		}
	}
	return cs, nil
}

// Snapshot copies agents, chains and stats under a single read lock.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Agents: make([]AgentView, 0, len(m.agentOrder)),
		Chains: make([]ChainView, 0, len(m.chainOrder)),
		Stats:  m.statsLocked(),
	}

	for _, id := range m.agentOrder {
		a := m.agents[id]
		view := AgentView{
			ID:       a.ID(),
			Name:     a.Name(),
			Status:   a.Status(),
			Metadata: a.MetadataCopy(),
		}
		if iface, ok := m.attachments[id]; ok {
			view.InterfaceID = iface.ID()
			view.InterfaceName = iface.Name()
		}
		snap.Agents = append(snap.Agents, view)
	}

	for _, c := range m.listChainsLocked() {
		snap.Chains = append(snap.Chains, m.chainViewLocked(c))
	}
	return snap
}

func (m *Manager) chainViewLocked(c *chain.Chain) ChainView {
	view := ChainView{
		ID:         c.ID(),
		Index:      c.Index(),
		Label:      c.Label(),
		Interfaces: make([]InterfaceView, 0, c.Len()),
	}
	for iface := range c.Traverse() {
		iv := InterfaceView{
			ID:       iface.ID(),
			Name:     iface.Name(),
			Commands: iface.Commands(),
		}
		if agentID, ok := m.attachedLocked(iface); ok {
			iv.AgentID = agentID
			if a, ok := m.agents[agentID]; ok {
				iv.AgentName = a.Name()
				iv.AgentStatus = a.Status()
			}
		}
		view.Interfaces = append(view.Interfaces, iv)
	}
	return view
}

// attachedLocked returns the agent bound to iface when the manager recorded
// that attachment. Binds made outside the manager are not reported.
// Caller must hold m.mu.
func (m *Manager) attachedLocked(iface *chain.Interface) (string, bool) {
	agentID, ok := iface.AttachedAgent()
	if !ok || m.attachments[agentID] != iface {
		return "", false
	}
	return agentID, true
}
