// Package psarc is the seam to the external PSARC archive reader.
//
// The container format itself is never parsed in-process. Extraction is
// delegated to a configured unpacker binary; this package shells out to it,
// reads the JSON manifest entries back, and models the manifest attribute
// blocks the scanner and identifier-map builder consume.
package psarc
