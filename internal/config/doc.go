// Package config loads, normalizes, and validates scriba's TOML
// configuration. Load applies defaults first, then the file contents, then
// path expansion, so callers always receive absolute paths and non-zero
// runner settings.
package config
