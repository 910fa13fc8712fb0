// Package storage records trace and snapshot runs on disk: metadata.json
// with the evaluated metrics, samples.csv with one row per frame and any
// images the run produced.
package storage
