// Package inventory recovers top-level declaration names from Python source
// text using a forgiving, line-oriented scanner. It deliberately avoids
// parsing: the source does not need to be valid, importable, or even
// complete, which lets the generators run very early in a development cycle.
package inventory
