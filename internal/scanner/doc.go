// Package scanner builds the song catalog from PSARC archive directories.
//
// A scan enumerates candidate archives, skips those whose modification time
// matches the existing catalog, extracts the bass-arrangement manifest from
// the rest through the external archive reader, and merges the results under
// a normalized (artist, title) dedup key. Archive failures are logged and
// counted, never fatal.
package scanner
