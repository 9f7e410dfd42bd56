// Package render draws manager state as colored terminal text.
//
// A Renderer consumes agent.Snapshot, agent.Stats and store.AuditEntry
// values. It never holds a manager, so a view always reflects one
// consistent snapshot.
//
// Inline colors use fatih/color and follow color.NoColor, which is set
// automatically when stdout is not a terminal. Boxes use a lipgloss
// renderer bound to the output writer.
//
// Clear is a no-op unless the renderer was built WithClearScreen(true).
package render
