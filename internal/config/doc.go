// Package config loads compiler settings from multiple sources (YAML build
// settings, environment variables, CLI flags) with precedence: CLI flags >
// YAML config > Environment variables > Defaults. It validates external input
// and writes the result into a fresh compilerconfig.Configuration through the
// catalog keys.
package config
