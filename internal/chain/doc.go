// Package chain provides interfaces and the ordered chains that hold them.
//
// # Overview
//
// An Interface is a control point. It can hold one attached agent and a
// set of named command handlers. A Chain is an ordered pipeline of
// interfaces, for example:
//
//	DataIngestion -> Processing -> Output
//
// Chains are created by agent.Manager, which assigns their ids. This
// package never looks up agents. An interface stores only the id of its
// attached agent.
//
// An interface belongs to at most one chain. The first AddInterface
// records the owner, and adding it to another chain fails with
// ErrInterfaceOwned.
//
// # Commands
//
// Handlers share one signature:
//
//	type Handler func(ctx context.Context, args ...any) (any, error)
//
// Unary and StringFunc adapt single-value functions:
//
//	iface.RegisterCommand("process", chain.StringFunc(func(d string) string {
//	    return "Processed: " + d
//	}))
//	out, err := iface.ExecuteCommand(ctx, "process", "x") // "Processed: x"
//
// Registering a name again replaces the handler. Executing an unknown
// name returns ErrCommandNotFound and changes nothing.
//
// # Traversal
//
// Traverse returns an iter.Seq in insertion order. Lookup by id is O(1)
// through an index kept next to the ordered slice. Head, Tail, Next and
// Prev walk the pipeline.
//
// # Thread Safety
//
// Interface and Chain guard their own state with mutexes. Handlers run
// without any lock held.
package chain
