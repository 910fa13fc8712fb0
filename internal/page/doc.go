// Package page builds the scrolling document from a YAML description.
package page
