// Package gui is the raylib desktop host. GL draws from both render devices
// share raylib's context: particles first, then the document text through
// raylib's batch, then the anchor quads.
package gui
