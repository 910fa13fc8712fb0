// Package anchors measures placeholder elements so GPU passes can draw
// over real layout.
package anchors
