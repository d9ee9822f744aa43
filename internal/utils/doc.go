// Package utils provides shared infrastructure for the repoheal CLI:
// configuration loading backed by Viper, zap logger construction,
// command-context accessors, and output writer helpers.
package utils
