// Package showcase holds the scripted walkthroughs printed by chainctl.
//
// Demo is the short script: three agents on one three interface chain,
// all active. Run plays four scenarios in order (basic chain, multiple
// chains, command handling, scalability) followed by the conclusion.
//
// Every script asks the factory for a new manager, so scripts never see
// each other's agents. The pause hook runs between scenarios; the CLI
// uses it to wait for Enter or to sleep.
package showcase
