// Package config loads, normalizes, and validates timelapse configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// TIMELAPSE_FRAME_RATE and TIMELAPSE_PRESET. The Config type centralizes
// every knob the CLI needs: capture directory conventions, encoder
// parameters, and log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
