// Package textwrap re-flows rendered text lines under a wrap column while
// honoring a minimum wrap width and a continuation indent. The manifest
// generator consumes it to keep aggregated import statements readable.
package textwrap
