// Package cli assembles the repoheal command hierarchy, wiring configuration
// loading and structured logging into every subcommand.
package cli
