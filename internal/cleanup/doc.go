// Package cleanup removes compiled byte-code artifacts from a directory tree.
// Only files carrying the byte-code suffix are ever deleted.
package cleanup
