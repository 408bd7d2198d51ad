// Package pipeline runs compiler phases against configurations. Phases only
// ever see read-only snapshots; modules compiled concurrently each get their
// own fork of the shared baseline.
package pipeline
