// Package smoothing eases the virtual scroll position towards its target.
//
// A [Module] hands out engine handles; each handle owns target, current,
// velocity and max. Two engines are available:
//
//   - ease: moves a fixed fraction (default 0.12) of the remaining distance per tick
//   - spring: a harmonica damped spring stepped at a fixed frame rate
//
// The [Adapter] is what the frame loop uses: Seed once at startup so the
// first frame shows the restored position, then Frame once per frame. Calls
// on a freed handle return [ErrDisposed], which the adapter turns into
// ok=false rather than an error, since disposal racing a scheduled frame is
// part of normal teardown.
package smoothing
