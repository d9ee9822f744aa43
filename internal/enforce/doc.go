// Package enforce implements the repository hygiene scanner behind the
// enforce command. It walks a source tree, applies per-line checks for tabs,
// trailing whitespace, and line-ending consistency, audits execute
// permissions, and aggregates everything into a single clean/unclean verdict
// with an append-only diagnostic stream.
package enforce
