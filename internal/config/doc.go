// Package config loads, normalizes, and validates segue configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SEGUE_FFMPEG. The Config type centralizes every knob the daemon and CLI
// need: output and temp directories, external tool binaries, render defaults,
// and worker timing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
