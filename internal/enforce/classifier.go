package enforce

import "strings"

const (
	tabCharacterConstant             = "\t"
	trailingSpaceCharacterConstant   = " "
	lineFeedTerminatorConstant       = "\n"
	carriageReturnTerminatorConstant = "\r"
	windowsTerminatorConstant        = "\r\n"
)

// ContainsTab reports whether the raw line contains any tab character.
func ContainsTab(rawLine string) bool {
	return strings.Contains(rawLine, tabCharacterConstant)
}

// HasTrailingSpace reports whether the logical line content is non-empty and
// ends with a space. Callers pass the terminator-stripped content.
func HasTrailingSpace(logicalLine string) bool {
	return len(logicalLine) > 0 && strings.HasSuffix(logicalLine, trailingSpaceCharacterConstant)
}

// SplitLineTerminator separates a raw line into its logical content and the
// trailing terminator, handling "\n", "\r\n", and bare "\r".
func SplitLineTerminator(rawLine string) (string, string) {
	switch {
	case strings.HasSuffix(rawLine, windowsTerminatorConstant):
		return rawLine[:len(rawLine)-len(windowsTerminatorConstant)], windowsTerminatorConstant
	case strings.HasSuffix(rawLine, lineFeedTerminatorConstant):
		return rawLine[:len(rawLine)-len(lineFeedTerminatorConstant)], lineFeedTerminatorConstant
	case strings.HasSuffix(rawLine, carriageReturnTerminatorConstant):
		return rawLine[:len(rawLine)-len(carriageReturnTerminatorConstant)], carriageReturnTerminatorConstant
	default:
		return rawLine, ""
	}
}

// SplitRawLines divides file content into raw lines with their terminators
// preserved, recognizing "\n", "\r\n", and bare "\r" as line boundaries. A
// final segment without a terminator is returned as-is.
func SplitRawLines(fileContent string) []string {
	rawLines := []string{}
	segmentStart := 0
	contentIndex := 0

	for contentIndex < len(fileContent) {
		currentByte := fileContent[contentIndex]
		switch currentByte {
		case '\n':
			rawLines = append(rawLines, fileContent[segmentStart:contentIndex+1])
			contentIndex++
			segmentStart = contentIndex
		case '\r':
			terminatorEnd := contentIndex + 1
			if terminatorEnd < len(fileContent) && fileContent[terminatorEnd] == '\n' {
				terminatorEnd++
			}
			rawLines = append(rawLines, fileContent[segmentStart:terminatorEnd])
			contentIndex = terminatorEnd
			segmentStart = contentIndex
		default:
			contentIndex++
		}
	}

	if segmentStart < len(fileContent) {
		rawLines = append(rawLines, fileContent[segmentStart:])
	}

	return rawLines
}
