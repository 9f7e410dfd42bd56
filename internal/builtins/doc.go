// Package builtins provides named command handlers for interfaces.
//
// # Overview
//
// Built-in commands are in-process handlers that configuration and the
// interactive console can refer to by name. They are grouped into packs and
// resolved through a Registry.
//
// # Command Packs
//
// Pipeline Pack (builtin:pipeline):
//
//   - process: "Processed: " + payload
//   - validate: true when the payload is non-empty
//   - transform: upper-cased payload
//
// Utility Pack (builtin:utility):
//
//   - echo: returns its arguments
//   - double: multiplies a number by two
//   - add: sums two or more numbers
//
// Status Pack (builtin:status):
//
//   - status: one-line summary of manager statistics
//
// # Registration
//
// Register all packs:
//
//	reg := builtins.NewRegistry(logger)
//	err := builtins.RegisterAll(reg, mgr)
//
// Command names are unique across packs. RegisterPack rejects a pack whose
// names collide with one already registered and adds nothing from it.
//
// # Installing Commands
//
// Install resolves names to handlers and registers them on an interface:
//
//	err := reg.Install(iface, "process", "validate")
//
// Every name is resolved first, so an unknown name returns
// ErrUnknownCommand and leaves the interface untouched.
//
// # Arguments
//
// Numeric commands accept int, float and numeric string arguments, so
// values typed at the console work without conversion. Mixed int and float
// input produces a float result. Bad input fails with
// chain.ErrInvalidArguments.
package builtins
