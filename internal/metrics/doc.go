// Package metrics summarizes recorded scroll runs: overshoot past the
// target, settle time, mean speed and the share of frames that skipped
// document writes.
package metrics
