// Package store provides the manager event journal using SQLite.
//
// # Architecture
//
// The Journal interface covers append, list and count of audit entries.
// SQLiteStore implements it on modernc.org/sqlite, so no cgo is needed.
// The journal records what happened; it does not restore manager state on
// restart.
//
// # Data Model
//
// AuditEntry holds one manager event:
//
//   - Kind: agent_registered, agent_attached, command_executed, ...
//   - AgentID, InterfaceID, ChainID, Command: what the event touched
//   - Status, Previous: new status and displaced agent or old status
//   - Error: handler or lookup failure text, empty on success
//   - Duration: command execution time
//
// Entries get a UUID and a sequence number. Listing is newest first by
// sequence, so events written within the same clock tick keep their order.
//
// # In-Memory Mode
//
// MemoryPath (":memory:") keeps the journal for the life of the process.
// The pool is limited to one connection because every SQLite connection to
// :memory: opens a separate database.
//
// # Recording Events
//
// AuditObserver plugs into the manager:
//
//	journal, _ := store.NewSQLiteStore(store.MemoryPath, logger)
//	mgr := agent.NewManager(logger,
//	    agent.WithObserver(store.NewAuditObserver(journal, logger)))
//
// A failed write is logged at Warn and the manager operation still succeeds.
//
// # Filtering
//
// AuditFilter narrows by time, kind, agent or interface. Limit defaults to
// 100 and is capped at 1000.
package store
