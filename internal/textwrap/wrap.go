package textwrap

import (
	"fmt"
	"strings"
)

const (
	breakTokenConstant                    = ", "
	invalidWrapColumnsTemplateConstant    = "minimum wrap column %d exceeds wrap column %d"
	indentPaddingCharacterConstant        = " "
	negativeColumnNormalizedValueConstant = 0
)

// Wrap re-flows the candidate lines so no produced line exceeds wrapColumn.
//
// Lines already within wrapColumn pass through untouched. Longer lines break
// at the last ", " boundary positioned at or after minimumWrapColumn and at
// or before wrapColumn; the remainder is indented to indentColumn and
// re-flowed under the same limits. A line offering no feasible break point is
// passed through unbroken rather than truncated.
func Wrap(candidateLines []string, wrapColumn int, minimumWrapColumn int, indentColumn int) ([]string, error) {
	if minimumWrapColumn > wrapColumn {
		return nil, fmt.Errorf(invalidWrapColumnsTemplateConstant, minimumWrapColumn, wrapColumn)
	}

	if indentColumn < negativeColumnNormalizedValueConstant {
		indentColumn = negativeColumnNormalizedValueConstant
	}

	wrappedLines := make([]string, 0, len(candidateLines))
	for _, candidateLine := range candidateLines {
		wrappedLines = append(wrappedLines, wrapSingleLine(candidateLine, wrapColumn, minimumWrapColumn, indentColumn)...)
	}

	return wrappedLines, nil
}

func wrapSingleLine(candidateLine string, wrapColumn int, minimumWrapColumn int, indentColumn int) []string {
	producedLines := []string{}
	currentLine := candidateLine

	for len(currentLine) > wrapColumn {
		breakPosition := findBreakPosition(currentLine, wrapColumn, minimumWrapColumn)
		if breakPosition < 0 {
			break
		}

		continuationText := strings.TrimLeft(currentLine[breakPosition:], indentPaddingCharacterConstant)
		continuationLine := strings.Repeat(indentPaddingCharacterConstant, indentColumn) + continuationText
		if len(continuationLine) >= len(currentLine) {
			break
		}

		producedLines = append(producedLines, currentLine[:breakPosition])
		currentLine = continuationLine
	}

	return append(producedLines, currentLine)
}

// findBreakPosition returns the length of the longest leading segment ending
// in a comma whose length stays within [minimumWrapColumn, wrapColumn], or -1
// when no such segment exists.
func findBreakPosition(candidateLine string, wrapColumn int, minimumWrapColumn int) int {
	bestPosition := -1
	searchOffset := 0
	for {
		tokenIndex := strings.Index(candidateLine[searchOffset:], breakTokenConstant)
		if tokenIndex < 0 {
			break
		}

		segmentLength := searchOffset + tokenIndex + 1
		if segmentLength > wrapColumn {
			break
		}
		if segmentLength >= minimumWrapColumn {
			bestPosition = segmentLength
		}
		searchOffset = segmentLength + 1
	}

	return bestPosition
}
