// ABOUTME: Side by side comparison of one shared interface and interface chains
// ABOUTME: Static diagrams printed by the visualize command

package render

const singleInterfaceDiagram = `                         ┌──────────────────┐
                         │ Single Interface │
                         │ (ONE POINT OF    │
                         │  FAILURE!)       │
                         └────────┬─────────┘
                                  │
                  ┌───────────────┼───────────────┐
                  │               │               │
            ┌─────▼─────┐   ┌─────▼─────┐   ┌─────▼─────┐
            │  Agent 1  │   │  Agent 2  │   │  Agent 3  │
            └───────────┘   └───────────┘   └───────────┘`

const chainDiagram = `    Chain 1:                      Chain 2:                 Chain 3:

  ┌──────────────┐            ┌──────────────┐         ┌──────────────┐
  │ Interface A  │            │ Interface D  │         │ Interface G  │
  └──────┬───────┘            └──────┬───────┘         └──────┬───────┘
         │                           │                        │
    ┌────▼────┐                 ┌────▼────┐              ┌────▼────┐
    │ Agent 1 │                 │ Agent 4 │              │ Agent 7 │
    └─────────┘                 └─────────┘              └─────────┘
         ↓                           ↓
  ┌──────────────┐            ┌──────────────┐
  │ Interface B  │            │ Interface E  │
  └──────┬───────┘            └──────┬───────┘
         │                           │
    ┌────▼────┐                 ┌────▼────┐
    │ Agent 2 │                 │ Agent 5 │
    └─────────┘                 └─────────┘
         ↓                           ↓
  ┌──────────────┐            ┌──────────────┐
  │ Interface C  │            │ Interface F  │
  └──────┬───────┘            └──────┬───────┘
         │                           │
    ┌────▼────┐                 ┌────▼────┐
    │ Agent 3 │                 │ Agent 6 │
    └─────────┘                 └─────────┘`

// Architecture writes the single interface versus chain comparison.
func (r *Renderer) Architecture() {
	r.Clear()
	r.Banner(Cyan, "INTERFACE CHAINS: THE NEXT EVOLUTION OF TUIS")
	r.Blank()
	r.Tinted(Magenta, "Problem Statement:")
	r.Line("  'Managing all my agents was the crux.'")
	r.Line("  'One interface was such a risk.'")
	r.Line("  'Interface chains - the next evolution of TUIs.'")
	r.Blank()
	r.Rule(Plain)
	r.Blank()

	r.Banner(Red, "SINGLE INTERFACE ARCHITECTURE (RISKY)")
	r.Blank()
	r.Line("%s", singleInterfaceDiagram)
	r.Blank()
	r.Tinted(Yellow, "Problems:")
	r.Line("  ✗ Single point of failure")
	r.Line("  ✗ Interface overload with many agents")
	r.Line("  ✗ Security vulnerabilities")
	r.Line("  ✗ Difficult to scale")
	r.Line("  ✗ Complex error handling")
	r.Blank()
	r.Rule(Plain)
	r.Blank()

	r.Banner(Green, "INTERFACE CHAIN ARCHITECTURE (SAFE)")
	r.Blank()
	r.Line("%s", chainDiagram)
	r.Blank()
	r.Tinted(Green, "Benefits:")
	r.Line("  ✓ Distributed risk across multiple interfaces")
	r.Line("  ✓ Each chain operates independently")
	r.Line("  ✓ Failure in one chain doesn't affect others")
	r.Line("  ✓ Easily scalable - add new chains")
	r.Line("  ✓ Clean separation of concerns")
	r.Line("  ✓ Specialized interfaces for different agent types")
	r.Blank()
	r.Rule(Plain)
	r.Blank()

	r.Tinted(Bold, "Conclusion:")
	r.Line("  Interface chains distribute risk, enable scalability, and represent")
	r.Line("  the evolution from monolithic to distributed agent management.")
	r.Blank()
}
