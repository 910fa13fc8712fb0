// Package render turns frame state into draw passes on a Device.
//
// Two passes exist. The particle pass uploads interleaved positions and a
// per-particle speed and draws soft point sprites, blended additively for
// the glow variant or with straight alpha for ink. The quad pass instances
// one unit quad per anchor rect; the fragment stage picks one of seven
// patterns by slot and animates it with a phase derived from scroll.
//
// Pattern and ParticleColor mirror the shaders on the CPU for devices
// without a GL context.
package render
