// Package layout computes 2D force-directed layouts for [graph.Graph] values.
//
// # Algorithm
//
// The [Engine] places every node uniformly at random in the square
// [-Dim/2, Dim/2]² and then iterates three forces under a cooling schedule:
//
//   - Attraction along every canonical edge, proportional to dist²/k and
//     optionally scaled by the aggregate edge weight.
//   - Repulsion between every unordered pair of nodes, proportional to k²/dist.
//     Coincident pairs are pushed apart along a random direction.
//   - Gravity toward the origin, with a strength derived from the mean
//     displacement of the iteration.
//
// Forces are accumulated into a per-node displacement buffer before any
// position changes. Each displacement is clamped to the current temperature,
// which decays geometrically by [Config.Cooling] until it drops below
// [Config.Epsilon]. The number of iterations per run therefore depends only on
// the schedule constants, never on the graph.
//
// [Config.ExtraRepeats] additional runs restart the temperature while keeping
// positions. After the last run, [Engine.Finalize] rescales positions so the
// farthest node lies exactly at [Config.Margin].
//
// # Reproducibility
//
// Nodes are visited in index order and pairs with a nested i < j traversal,
// so with a fixed seed ([WithSeed]) or an injected source ([WithRand]) the
// result is deterministic.
//
// # Observers
//
// An [Observer] receives [Snapshot] frames during [Engine.Run]: one before the
// first iteration and then every refresh interval, where the interval doubles
// every [Config.RefreshDoubling] iterations. Snapshots are copies; the engine
// does not wait on the observer beyond the call itself.
//
//	e := layout.New(g, layout.WithSeed(42))
//	if err := e.Run(ctx); err != nil {
//	    return err
//	}
//	res := e.Result()
package layout
