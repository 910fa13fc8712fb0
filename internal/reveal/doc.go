// Package reveal fades and lifts the words of animated text as their
// section scrolls past a trigger line.
//
// For a section whose top is at y in a viewport of height H:
//
//	raw      = 1 - (y - Trigger*H) / Range
//	progress = clamp((raw - i*Stagger) * Gain, 0, 1)
//
// where i is the word index. Opacity is progress and the word is offset
// down by (1 - progress) * YOffset.
package reveal
