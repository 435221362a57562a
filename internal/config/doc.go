// Package config loads vitrine's configuration from a TOML file and
// supplies defaults when it is missing. The file lives at
// ~/.config/vitrine/config.toml unless overridden; values can also be
// overridden per-run with CLI flags.
package config
