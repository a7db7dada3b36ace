// Package savefile decodes the game's binary player-progress save file.
//
// The on-disk format is inherited from the game: a four-byte magic tag, a
// fixed sixteen-byte header, then ciphertext under a fixed embedded key where
// each sixteen-byte block decrypts independently (no chaining, no IV),
// wrapping a zlib-compressed JSON document. Decode failures carry the stage
// that failed so callers can report exactly what went wrong.
package savefile
