package pathutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/repoheal/internal/utils/path"
)

const (
	testCaseAbsolutePathSuffixConstant = "scan-path-sanitizer"
	testCaseTildeRelativePathConstant  = "Projects/example"
	testCaseWhitespacePrefixConstant   = "  "
	testCaseWhitespaceSuffixConstant   = "\t"
)

func TestScanPathSanitizerNormalizesInputs(testInstance *testing.T) {
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	require.NoError(testInstance, homeDirectoryError)

	temporaryDirectory := testInstance.TempDir()
	absolutePath := filepath.Join(temporaryDirectory, testCaseAbsolutePathSuffixConstant)
	tildeInput := filepath.Join("~", testCaseTildeRelativePathConstant)
	expandedTilde := filepath.Join(homeDirectory, testCaseTildeRelativePathConstant)

	sanitizer := pathutils.NewScanPathSanitizer()

	sanitized := sanitizer.Sanitize([]string{
		"",
		testCaseWhitespacePrefixConstant + absolutePath + testCaseWhitespaceSuffixConstant,
		testCaseWhitespacePrefixConstant + tildeInput + testCaseWhitespaceSuffixConstant,
	})
	require.Equal(testInstance, []string{absolutePath, expandedTilde}, sanitized)
}

func TestScanPathSanitizerResolvesRelativePaths(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	sanitizer := pathutils.NewScanPathSanitizer()
	sanitized := sanitizer.SanitizeOne("relative/input")
	require.Equal(testInstance, filepath.Join(workingDirectory, "relative", "input"), sanitized)
}

func TestScanPathSanitizerReturnsNilForEmptyResults(testInstance *testing.T) {
	sanitizer := pathutils.NewScanPathSanitizer()

	sanitized := sanitizer.Sanitize([]string{"   ", "\n"})
	require.Nil(testInstance, sanitized)
}
