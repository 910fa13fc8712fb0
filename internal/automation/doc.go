// Package automation runs the scroll pipeline from scripts instead of a
// window: wheel scripts replayed against the smoothing engine, offscreen
// snapshots, YAML scenarios of several runs and parameter sweeps.
package automation
