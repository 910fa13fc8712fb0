// Package softdevice implements render.Device on a gogpu/gg canvas and
// composes headless frames with the document text in between the layers.
package softdevice
