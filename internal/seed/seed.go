// ABOUTME: Applies a configured topology to a Manager: agents, chains, attachments, commands.
// ABOUTME: All writes go through Manager operations so observers see every step.

package seed

import (
	"fmt"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/builtins"
	"github.com/2389/chainmgr/internal/chain"
	"github.com/2389/chainmgr/internal/config"
)

// Result lists what Apply created.
type Result struct {
	Agents []*agent.Agent
	Chains []*chain.Chain
}

// Apply registers every agent, builds every chain in order, attaches the
// declared agents and installs the named builtin commands. It stops at the
// first failure; work done before the failure stays in the manager.
func Apply(m *agent.Manager, topo config.Topology, reg *builtins.Registry) (*Result, error) {
	res := &Result{}

	for _, spec := range topo.Agents {
		opts := []agent.Option{agent.WithMetadata(spec.Metadata)}
		if spec.Status != "" {
			opts = append(opts, agent.WithStatus(agent.Status(spec.Status)))
		}
		a := agent.New(spec.ID, spec.Name, opts...)
		if err := m.RegisterAgent(a); err != nil {
			return res, fmt.Errorf("registering agent %s: %w", spec.ID, err)
		}
		res.Agents = append(res.Agents, a)
	}

	for _, spec := range topo.Chains {
		c := m.CreateInterfaceChain()
		c.SetLabel(spec.Name)
		res.Chains = append(res.Chains, c)

		for _, ispec := range spec.Interfaces {
			if err := m.AddInterface(c.ID(), chain.NewInterface(ispec.ID, ispec.Name)); err != nil {
				return res, fmt.Errorf("adding interface %s: %w", ispec.ID, err)
			}
		}
	}

	for _, spec := range topo.Chains {
		for _, ispec := range spec.Interfaces {
			if ispec.Agent != "" {
				if _, err := m.AttachAgentToInterface(ispec.Agent, ispec.ID); err != nil {
					return res, fmt.Errorf("attaching %s to %s: %w", ispec.Agent, ispec.ID, err)
				}
			}
			for _, name := range ispec.Commands {
				cmd, err := reg.Lookup(name)
				if err != nil {
					return res, fmt.Errorf("interface %s: %w", ispec.ID, err)
				}
				if err := m.RegisterCommand(ispec.ID, cmd.Name, cmd.Handler); err != nil {
					return res, fmt.Errorf("interface %s: %w", ispec.ID, err)
				}
			}
		}
	}

	return res, nil
}
