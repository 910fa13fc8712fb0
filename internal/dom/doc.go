// Package dom is a retained document tree with block flow layout.
//
// Elements are laid out top to bottom inside the root content container;
// text elements wrap their words inline. Geometry reads (OffsetRect,
// BoundingClientRect, ScrollHeight) lay the tree out first when a
// layout-affecting write left it dirty, and Stats records how reads and
// writes interleave within a frame so callers can check that geometry is
// collected before styles are applied.
//
// Opacity and TranslateY are compositor-only styles: writing them never
// dirties layout. Height, text and viewport changes do.
package dom
