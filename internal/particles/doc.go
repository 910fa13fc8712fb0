// Package particles is the particle field engine and its frame-loop adapter.
//
// The engine keeps every particle on a weak spring to a home position and
// pushes particles away from the pointer. Its storage is exposed through
// zero-copy views that are only valid until the engine next mutates or
// reallocates it; the [Adapter] re-fetches them after every update.
package particles
