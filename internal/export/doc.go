// Package export renders recorded runs to SVG.
package export
