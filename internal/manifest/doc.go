// Package manifest generates an aggregating import manifest (an
// __init__.py-style file) for one folder of source files. It merges the
// declaration inventories of every module, reports cross-module name
// collisions, and renders wrapped, optionally column-aligned import lines.
package manifest
