// Package scroll owns the virtual scroll target.
//
// A [Controller] turns wheel and touch input into a target offset clamped to
// [0, max], where max is the content height minus the viewport height. The
// target survives restarts within a session through a [session.Store]:
// writes are throttled during continuous input and forced on unmount, and
// any storage failure degrades silently to non-persistent behaviour.
package scroll
