// Package catalog declares the well-known configuration keys, grouped by the
// pipeline stage that reads them, together with the enumerations they hold.
// The keys are created once at package initialisation and never reassigned.
package catalog
