// Package gldevice implements render.Device on an OpenGL 3.3+ core
// context owned by the host window.
package gldevice
