// Package agent tracks agents and owns their attachment to interface chains.
//
// # Overview
//
// The agent package holds the Agent type and the Manager that registers
// agents, creates chains, attaches agents to interfaces, routes commands,
// and reports aggregate status. The Manager is the only component that
// writes attachments, so its view of who is attached where stays
// authoritative.
//
// # Agent
//
// An Agent has an immutable id and name, a free-form status, and a
// metadata map:
//
//	a := agent.New("a1", "DataCollector",
//	    agent.WithMetadata(map[string]any{"type": "collector"}))
//	a.Activate()
//
// StatusIdle is the initial status. Activate and Deactivate are idempotent
// and never fail. SetStatus accepts any string, so "processing" or
// "error" are legal. Meta returns ErrMetadataKeyNotFound for a missing key.
//
// Custom agent variants embed *Agent and add fields; anything exposing the
// Descriptor methods can be rendered the same way.
//
// # Manager
//
// The Manager is created once and passed to every consumer:
//
//	mgr := agent.NewManager(logger, agent.WithObserver(journal))
//
// Key operations:
//
//   - RegisterAgent(a): Add an agent; duplicate ids are rejected
//   - CreateInterfaceChain(): Allocate an empty chain with a UUID id
//   - AddInterface(chainID, iface): Append an interface to a chain
//   - AttachAgentToInterface(agentID, interfaceID): Attach, last write wins
//   - DetachAgent(agentID): Clear an attachment
//   - ActivateAgent / DeactivateAgent / SetAgentStatus: Status writes
//   - ToggleAllAgents(): Bulk status flip
//   - RegisterCommand / ExecuteCommand: Command routing by interface id
//   - Stats / ChainStatus / Snapshot: Read-only views
//
// # Attachment Rules
//
// Interface ids are unique within a chain. Attachment resolves the first
// chain, in creation order, that holds the id. An interface holds at most
// one agent and an agent sits on at most one interface:
//
//  1. Attaching to an occupied interface displaces the previous agent
//  2. The displaced agent keeps its status and loses its interface
//  3. Attaching an agent that sits elsewhere moves it
//  4. Attachment never changes the attached agent's status
//
// # Toggle Modes
//
// ToggleFlip, the default, flips each agent: active becomes idle and every
// other status becomes active. ToggleMajority looks at the whole set and
// moves every agent to idle when more than half are active, otherwise to
// active.
//
// # Events
//
// Every mutation and command execution produces an Event. Observers
// registered with WithObserver receive events after the manager lock is
// released, so an observer may query the manager.
//
// Command executions are wrapped in an OpenTelemetry span named
// "agent.execute_command". The global tracer is used unless WithTracer is
// given.
//
// # Thread Safety
//
// The Manager guards agents, chains and attachments with one RWMutex.
// Agents, chains and interfaces carry their own locks, and command handlers
// run with no lock held.
package agent
