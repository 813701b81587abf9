// Package memo provides a dependency-gated computation cache.
//
// Memo-ive Go caches one derived value per logical call site and re-runs the
// derivation only when an explicit, ordered list of tracked inputs has changed
// by identity. It is the cache a host runs once per cycle — it never schedules
// anything itself and assumes nothing about how cycles are triggered.
//
// # What is a dependency snapshot?
//
// A Snapshot is the ordered list of inputs a derivation reads. Two snapshots
// match only when they have the same length and every position compares equal:
//   - value types (numbers, strings, booleans, comparable structs) by value,
//   - pointer-like values (pointers, maps, slices, chans, funcs) by identity —
//     same underlying storage, never structural equality,
//   - NaN equal to itself, so a NaN dependency cannot recompute forever.
//
// # Why dependency gating instead of argument memoization?
//
// Argument memoization keys a table by input values. Dependency gating keeps a
// single slot per call site and asks a narrower question:
//
//	→ "Did anything this derivation reads change since last cycle?"
//
// That question only has a trustworthy answer when the derivation is pure.
// Like Tableize in effect_ive_go, the point is not performance alone — the
// cache forces the developer to state what a computation depends on, and the
// optional verification mode (double invocation) surfaces derivations that
// lied about it.
//
// # How does it work?
//
// A Registry owns the live slots, keyed by an opaque CallSiteID the host
// assigns per logical call location. Each cycle the host calls Use (or
// Registry.Get) with the current snapshot and a derive function; the slot
// returns the stored value when the snapshot is unchanged and recomputes
// otherwise. Retire drops a slot when its call site permanently disappears.
//
// Example:
//
//	reg := memo.New(memo.WithLogger(logger))
//	id := memo.NewCallSiteID()
//
//	total, err := memo.Use(reg, id, memo.Snapshot{a, b}, func() (int, error) {
//	    return expensiveSum(a, b), nil
//	})
//
// The registry is not internally locked by default: the host serializes cycles
// per call site. Hosts that cannot are given WithShards, which serializes
// Registry.Get / Use per call site through striped locks.
//
// WARNING: derive must be pure. The cache may reuse a stored value for as long
// as the snapshot matches, and under verification mode derive runs twice per
// recomputation. A derivation with side effects breaks both guarantees.
package memo
