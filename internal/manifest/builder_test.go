package manifest_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoheal/internal/manifest"
)

const (
	alphaModuleContentConstant = "def one():\n    pass\n\ndef two():\n    pass\n"
	betaModuleContentConstant  = "class Widget:\n    pass\n\ndef three():\n    pass\n"
	emptyModuleContentConstant = "# nothing declared here\n"
)

func writeSourceFile(testInstance *testing.T, folder string, fileName string, content string) {
	testInstance.Helper()
	require.NoError(testInstance, os.WriteFile(filepath.Join(folder, fileName), []byte(content), 0o644))
}

func TestCollectModuleDeclarations(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	writeSourceFile(testInstance, tempDirectory, "alpha.py", alphaModuleContentConstant)
	writeSourceFile(testInstance, tempDirectory, "beta.py", betaModuleContentConstant)
	writeSourceFile(testInstance, tempDirectory, "empty.py", emptyModuleContentConstant)
	writeSourceFile(testInstance, tempDirectory, "__init__.py", "def stale():\n    pass\n")
	writeSourceFile(testInstance, tempDirectory, "notes.txt", "def ignored():\n    pass\n")
	require.NoError(testInstance, os.Mkdir(filepath.Join(tempDirectory, "nested"), 0o755))

	moduleDeclarations, collectError := manifest.CollectModuleDeclarations(tempDirectory, "__init__.py")
	require.NoError(testInstance, collectError)
	require.Equal(testInstance, manifest.ModuleDeclarations{
		"alpha": {"one", "two"},
		"beta":  {"Widget", "three"},
	}, moduleDeclarations)
}

func TestFindDuplicateNames(testInstance *testing.T) {
	require.Empty(testInstance, manifest.FindDuplicateNames([]string{"a", "b", "c"}))
	require.Equal(testInstance, []string{"a", "c"}, manifest.FindDuplicateNames([]string{"a", "b", "c", "a", "c", "a"}))
}

func TestRenderSortsAndAligns(testInstance *testing.T) {
	moduleDeclarations := manifest.ModuleDeclarations{
		"zeta":  {"last"},
		"alpha": {"one", "two"},
	}

	renderedText, renderError := manifest.Render(moduleDeclarations, true, 100)
	require.NoError(testInstance, renderError)
	require.Equal(testInstance,
		"from .alpha import one, two\n"+
			"from .zeta  import last",
		renderedText)

	unalignedText, renderError := manifest.Render(moduleDeclarations, false, 100)
	require.NoError(testInstance, renderError)
	require.Equal(testInstance,
		"from .alpha import one, two\n"+
			"from .zeta import last",
		unalignedText)
}

func TestRenderWrapsLongModuleLines(testInstance *testing.T) {
	moduleDeclarations := manifest.ModuleDeclarations{
		"alpha": {"one", "two", "three", "four", "five", "six", "seven", "eight"},
	}

	renderedText, renderError := manifest.Render(moduleDeclarations, false, 40)
	require.NoError(testInstance, renderError)

	renderedLines := strings.Split(renderedText, "\n")
	require.Greater(testInstance, len(renderedLines), 1)
	for _, renderedLine := range renderedLines {
		require.LessOrEqual(testInstance, len(renderedLine), 40)
	}
	expectedIndent := strings.Repeat(" ", len("from . import ")+len("alpha")+4)
	for _, continuationLine := range renderedLines[1:] {
		require.True(testInstance, strings.HasPrefix(continuationLine, expectedIndent))
	}
}

func TestRenderRejectsWrapNarrowerThanHeader(testInstance *testing.T) {
	moduleDeclarations := manifest.ModuleDeclarations{
		"really_long_module_name": {"one", "two"},
	}

	_, renderError := manifest.Render(moduleDeclarations, false, 20)
	require.Error(testInstance, renderError)
	require.Contains(testInstance, renderError.Error(), "minimum wrap column")
}

func TestGeneratorBuildReportsDuplicatesAndStillRenders(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	writeSourceFile(testInstance, tempDirectory, "alpha.py", "def foo():\n    pass\n")
	writeSourceFile(testInstance, tempDirectory, "beta.py", "def foo():\n    pass\n")

	var warnings bytes.Buffer
	renderedText, buildError := manifest.NewGenerator(&warnings).Build(manifest.GeneratorOptions{
		Folder:     tempDirectory,
		WrapColumn: 100,
	})
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "from .alpha import foo\nfrom .beta import foo", renderedText)

	warningText := warnings.String()
	require.Contains(testInstance, warningText, "Uniqueness Problem: 2 functions, but only 1 unique functions")
	require.Contains(testInstance, warningText, "Duplicated functions:")
	require.Contains(testInstance, warningText, "foo")
}

func TestGeneratorBuildWritesOutputFile(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	writeSourceFile(testInstance, tempDirectory, "alpha.py", alphaModuleContentConstant)
	outputPath := filepath.Join(tempDirectory, "__init__.py")

	var warnings bytes.Buffer
	renderedText, buildError := manifest.NewGenerator(&warnings).Build(manifest.GeneratorOptions{
		Folder:     tempDirectory,
		WrapColumn: 100,
		OutputPath: outputPath,
	})
	require.NoError(testInstance, buildError)

	writtenBytes, readError := os.ReadFile(outputPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, renderedText+"\n", string(writtenBytes))
}

func TestGeneratorBuildWrapViolationWritesNothing(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	writeSourceFile(testInstance, tempDirectory, "module_with_a_quite_long_name.py", alphaModuleContentConstant)
	outputPath := filepath.Join(tempDirectory, "__init__.py")

	var warnings bytes.Buffer
	_, buildError := manifest.NewGenerator(&warnings).Build(manifest.GeneratorOptions{
		Folder:     tempDirectory,
		WrapColumn: 10,
		OutputPath: outputPath,
	})
	require.Error(testInstance, buildError)

	_, statError := os.Stat(outputPath)
	require.True(testInstance, os.IsNotExist(statError))
}

func TestGeneratorBuildEmptyFolderYieldsEmptyText(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()

	var warnings bytes.Buffer
	renderedText, buildError := manifest.NewGenerator(&warnings).Build(manifest.GeneratorOptions{
		Folder:     tempDirectory,
		WrapColumn: 100,
	})
	require.NoError(testInstance, buildError)
	require.Empty(testInstance, renderedText)
	require.Empty(testInstance, warnings.String())
}
