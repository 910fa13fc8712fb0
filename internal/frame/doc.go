// Package frame runs the per-frame pipeline.
//
// A Scheduler moves through Uninitialized, Initializing, Running and
// Stopped. While initializing it polls the memoized module loads on every
// callback without blocking; once both are ready it seeds smoothing at the
// restored scroll target and runs the first frame in the same callback.
//
// Each running frame, in order:
//
//  1. ticks smoothing for the current scroll position and velocity
//  2. writes the content transform
//  3. updates word reveal (all reads, then all writes)
//  4. steps the particle module and re-fetches its views
//  5. draws particles, then the anchor quads
//
// Steps 2 and 3 are skipped while the position moved by at most
// SkipThreshold and layout has not changed. A disposed module handle stops
// the loop without further draws.
//
// While started, a size change of the content container recomputes the
// scroll bound and re-clamps the target.
package frame
