// Package config loads, normalizes, and validates flupp configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies FLUPP_* environment overrides on
// top of the file. The Config type centralizes every knob the CLI, the
// directory watcher and the HTTP API need so the logbook database, log files
// and watch directory are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
