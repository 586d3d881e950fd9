// Package logging builds the slog loggers used across segue.
//
// New constructs a logger from Options; NewFromConfig wires in the
// configuration's log directory, level, and format. Two formats exist: a
// human-oriented console handler (timestamp, level, component prefix, k=v
// attributes) and standard JSON for log shippers.
//
// The package also carries small helpers the rest of the codebase leans on:
// typed attribute constructors, component-scoped loggers, a no-op logger for
// tests, and a progress sampler that keeps per-frame render logging from
// flooding the output.
package logging
