// Package christofides approximates travelling-salesman tours over small,
// complete weighted graphs with the Christofides heuristic, and plans
// fuel-priced round trips through named places.
//
// 🚀 What is inside?
//
//	graph/   - immutable N×N cost matrix, vertex metadata, text parser
//	tsp/     - the pipeline: MST → odd vertices → matching → Euler walk → shortcut
//	planner/ - places, great-circle distances, fuel pricing, leg geometry
//	roads/   - sparse road network: shortest paths, snapping, reachability
//	history/ - bolt-backed store of past runs
//	config/  - YAML + .env + CHRISTOFIDES_* settings
//	cmd/     - the christofides command (solve, plan, history)
//
// ✨ Guarantees
//
//   - Deterministic: equal inputs and options give identical tours.
//   - Every stage result is kept on tsp.Result for inspection.
//   - On metric inputs the tour never exceeds the Euler walk it came from.
//
// Quick ASCII example:
//
//	   0
//	 / | \
//	1  2  3      star: 0–1=1, 0–2=2, 0–3=3, 1–2=4, 1–3=5, 2–3=6
//
// yields the cycle 0 → 1 → 2 → 3 → 0 of cost 14.
//
//	go install github.com/katalvlaran/christofides/cmd/christofides@latest
package christofides
