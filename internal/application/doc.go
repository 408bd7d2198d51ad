// Package application provides dependency wiring for the command line tool.
// It owns the configuration produced by the loader, hands snapshots to the
// pipeline driver, and renders configurations and emission plans, keeping the
// main package focused on CLI parsing.
package application
