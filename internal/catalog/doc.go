// Package catalog models the persistent song catalog built from PSARC scans.
//
// The catalog is a single versioned JSON document mapping song identifiers to
// bass-arrangement metadata. It is loaded and saved wholesale; a missing
// document loads as an empty catalog.
package catalog
