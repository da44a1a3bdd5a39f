// Package config loads, validates, and live-reloads editor settings
// from a TOML file. A missing file yields the defaults; out-of-range
// values are clamped rather than rejected, so a bad config never blocks
// startup.
package config
