package inventory

import "strings"

const (
	logicalLineSeparatorConstant      = "\n"
	overloadMarkerLineConstant        = "@overload"
	blockCommentMarkerConstant        = `"""`
	rawBlockCommentMarkerConstant     = `r"""`
	classKeywordPrefixConstant        = "class "
	functionKeywordPrefixConstant     = "def "
	parameterListOpenerConstant       = "("
	declarationColonConstant          = ":"
	privateNamePrefixConstant         = "_"
	constantAssignmentMarkerConstant  = "="
	constantTokenSeparatorConstant    = " "
	constantUnderscoreRuneConstant    = '_'
	constantUppercaseLowerBoundMarker = 'A'
	constantUppercaseUpperBoundMarker = 'Z'
)

// scannerState enumerates the extractor's line-scanner states so transitions
// stay auditable: normal scanning, swallowing the line after an overload
// marker, and skipping the interior of a triple-quoted block.
type scannerState int

const (
	scannerStateNormal scannerState = iota
	scannerStateSkipNextLine
	scannerStateBlockComment
)

// Extract returns the top-level class, function, and constant declarations
// found in sourceText, in source order. Private (underscore-prefixed) class
// and function names are included only when includePrivate is set. Duplicate
// names within one file are preserved; deduplication is an aggregation-layer
// concern.
//
// The triple-quote handling is intentionally approximate: a block opens on a
// line starting with the marker (optionally raw-prefixed) and closes on a
// line ending with it, with no awareness of nesting or markers embedded in
// strings.
func Extract(sourceText string, includePrivate bool) []Declaration {
	declarations := []Declaration{}
	currentState := scannerStateNormal

	for _, logicalLine := range strings.Split(sourceText, logicalLineSeparatorConstant) {
		switch currentState {
		case scannerStateSkipNextLine:
			currentState = scannerStateNormal
			continue
		case scannerStateBlockComment:
			if strings.HasSuffix(logicalLine, blockCommentMarkerConstant) {
				currentState = scannerStateNormal
			}
			continue
		}

		switch {
		case logicalLine == overloadMarkerLineConstant:
			currentState = scannerStateSkipNextLine
		case strings.HasPrefix(logicalLine, blockCommentMarkerConstant) || strings.HasPrefix(logicalLine, rawBlockCommentMarkerConstant):
			currentState = scannerStateBlockComment
		case strings.HasPrefix(logicalLine, classKeywordPrefixConstant):
			if declarationName, accepted := extractKeywordDeclaration(logicalLine, classKeywordPrefixConstant, includePrivate); accepted {
				declarations = append(declarations, Declaration{Name: declarationName, Kind: DeclarationKindClass})
			}
		case strings.HasPrefix(logicalLine, functionKeywordPrefixConstant):
			if declarationName, accepted := extractKeywordDeclaration(logicalLine, functionKeywordPrefixConstant, includePrivate); accepted {
				declarations = append(declarations, Declaration{Name: declarationName, Kind: DeclarationKindFunction})
			}
		default:
			if constantName, accepted := extractConstantDeclaration(logicalLine); accepted {
				declarations = append(declarations, Declaration{Name: constantName, Kind: DeclarationKindConstant})
			}
		}
	}

	return declarations
}

// extractKeywordDeclaration recovers the identifier following a class or def
// keyword: everything before the first parenthesis (drops the parameter
// list), then before the first colon (drops the no-parameter form).
func extractKeywordDeclaration(logicalLine string, keywordPrefix string, includePrivate bool) (string, bool) {
	remainder := logicalLine[len(keywordPrefix):]
	remainder, _, _ = strings.Cut(remainder, parameterListOpenerConstant)
	remainder, _, _ = strings.Cut(remainder, declarationColonConstant)
	declarationName := strings.TrimSpace(remainder)

	if len(declarationName) == 0 {
		return "", false
	}
	if !includePrivate && strings.HasPrefix(declarationName, privateNamePrefixConstant) {
		return "", false
	}
	return declarationName, true
}

// extractConstantDeclaration applies the module-level constant heuristic: a
// line opening with an uppercase ASCII letter that contains both an equals
// sign and a space, whose leading token (stripped of a trailing annotation
// colon) consists solely of uppercase letters and underscores.
func extractConstantDeclaration(logicalLine string) (string, bool) {
	if len(logicalLine) == 0 {
		return "", false
	}
	firstCharacter := logicalLine[0]
	if firstCharacter < constantUppercaseLowerBoundMarker || firstCharacter > constantUppercaseUpperBoundMarker {
		return "", false
	}
	if !strings.Contains(logicalLine, constantAssignmentMarkerConstant) || !strings.Contains(logicalLine, constantTokenSeparatorConstant) {
		return "", false
	}

	leadingToken, _, _ := strings.Cut(logicalLine, constantTokenSeparatorConstant)
	leadingToken, _, _ = strings.Cut(leadingToken, declarationColonConstant)
	if len(leadingToken) == 0 {
		return "", false
	}

	for _, tokenCharacter := range leadingToken {
		isUppercaseLetter := tokenCharacter >= constantUppercaseLowerBoundMarker && tokenCharacter <= constantUppercaseUpperBoundMarker
		if !isUppercaseLetter && tokenCharacter != constantUnderscoreRuneConstant {
			return "", false
		}
	}

	return leadingToken, true
}
