// Package skeleton writes placeholder unit-test files for a folder of source
// files. Each generated file names every declaration of its source module in
// a test-class stub so a diff against the real test suite shows what is
// missing.
package skeleton
