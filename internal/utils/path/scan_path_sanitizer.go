// Package pathutils normalizes filesystem path arguments shared by the
// repoheal commands: tilde expansion, whitespace trimming, and absolute
// path resolution for scan roots and exclusion sets.
package pathutils

import (
	"path/filepath"
	"strings"
)

// ScanPathSanitizer normalizes scan root and exclusion path inputs consistently across commands.
type ScanPathSanitizer struct {
	homeExpander *HomeExpander
}

// NewScanPathSanitizer constructs a ScanPathSanitizer with default behavior.
func NewScanPathSanitizer() *ScanPathSanitizer {
	return NewScanPathSanitizerWithExpander(nil)
}

// NewScanPathSanitizerWithExpander constructs a ScanPathSanitizer using the provided expander.
func NewScanPathSanitizerWithExpander(homeExpander *HomeExpander) *ScanPathSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &ScanPathSanitizer{homeExpander: resolvedExpander}
}

// SanitizeOne trims whitespace, expands the user's home directory, and resolves the path to an absolute form.
func (sanitizer *ScanPathSanitizer) SanitizeOne(candidatePath string) string {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		return ""
	}

	expandedPath := sanitizer.expander().Expand(trimmedCandidate)
	if len(expandedPath) == 0 {
		return ""
	}

	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return filepath.Clean(expandedPath)
	}
	return absolutePath
}

// Sanitize applies SanitizeOne to every candidate and drops entries that normalize to nothing.
func (sanitizer *ScanPathSanitizer) Sanitize(candidatePaths []string) []string {
	sanitizedPaths := make([]string, 0, len(candidatePaths))
	for candidateIndex := range candidatePaths {
		sanitizedPath := sanitizer.SanitizeOne(candidatePaths[candidateIndex])
		if len(sanitizedPath) == 0 {
			continue
		}
		sanitizedPaths = append(sanitizedPaths, sanitizedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}
	return sanitizedPaths
}

func (sanitizer *ScanPathSanitizer) expander() *HomeExpander {
	if sanitizer == nil || sanitizer.homeExpander == nil {
		return NewHomeExpander()
	}
	return sanitizer.homeExpander
}
