// Package logging builds slog loggers for bassline commands.
//
// It provides a human-oriented console handler for interactive use, a JSON
// handler for machine consumption, typed attribute helpers, and component
// loggers so every record carries the subsystem that emitted it.
package logging
