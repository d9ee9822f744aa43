package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

type readmeApplicationConfiguration struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Tools struct {
		Enforce struct {
			Extensions []string `yaml:"extensions"`
			Skip       []string `yaml:"skip"`
		} `yaml:"enforce"`
		MakeInit struct {
			Lineup  bool   `yaml:"lineup"`
			Wrap    int    `yaml:"wrap"`
			Outfile string `yaml:"outfile"`
		} `yaml:"make_init"`
		WriteTests struct {
			Author    string `yaml:"author"`
			Output    string `yaml:"output"`
			Recursive bool   `yaml:"recursive"`
		} `yaml:"write_tests"`
		DeletePyc struct {
			Recursive bool `yaml:"recursive"`
			Print     bool `yaml:"print"`
		} `yaml:"delete_pyc"`
	} `yaml:"tools"`
}

func TestReadmeConfigurationSnippetParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	var applicationConfiguration readmeApplicationConfiguration
	unmarshalError := yaml.Unmarshal([]byte(snippetContent), &applicationConfiguration)
	require.NoError(testInstance, unmarshalError)

	require.Equal(testInstance, "info", applicationConfiguration.Common.LogLevel)
	require.Equal(testInstance, "structured", applicationConfiguration.Common.LogFormat)
	require.Equal(testInstance, []string{".py"}, applicationConfiguration.Tools.Enforce.Extensions)
	require.Equal(testInstance, 100, applicationConfiguration.Tools.MakeInit.Wrap)
	require.Equal(testInstance, "__init__.py", applicationConfiguration.Tools.MakeInit.Outfile)
	require.Equal(testInstance, "tests", applicationConfiguration.Tools.WriteTests.Output)
	require.False(testInstance, applicationConfiguration.Tools.DeletePyc.Recursive)
}
