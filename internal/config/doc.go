// Package config loads, normalizes, and validates bassline configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: archive directories, the data directory holding the catalog
// and identifier-map documents, save-file discovery roots, and Jellyfin
// credentials.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and clear validation errors.
package config
