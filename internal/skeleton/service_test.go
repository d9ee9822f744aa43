package skeleton_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoheal/internal/skeleton"
)

const alphaSourceContentConstant = "def one():\n    pass\n\ndef _hidden():\n    pass\n"

func currentMonthAndYear() (string, string) {
	generationTime := time.Now()
	return generationTime.Month().String(), strconv.Itoa(generationTime.Year())
}

func TestServiceWriteTopLevelModule(testInstance *testing.T) {
	repositoryDirectory := filepath.Join(testInstance.TempDir(), "myrepo")
	require.NoError(testInstance, os.MkdirAll(repositoryDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryDirectory, "alpha.py"), []byte(alphaSourceContentConstant), 0o644))
	outputDirectory := filepath.Join(testInstance.TempDir(), "generated")

	var progressOutput bytes.Buffer
	service := skeleton.NewService(&progressOutput)
	writeError := service.Write(skeleton.GeneratorOptions{
		Folder:       repositoryDirectory,
		OutputFolder: outputDirectory,
		Author:       "Jane Doe",
	})
	require.NoError(testInstance, writeError)

	generatedPath := filepath.Join(outputDirectory, "test_alpha.py")
	require.Equal(testInstance, fmt.Sprintf("Writing: %q.\n", generatedPath), progressOutput.String())

	monthName, yearText := currentMonthAndYear()
	expectedDocument := strings.Join([]string{
		`r"""`,
		"Test file for the `alpha` module of the \"myrepo\" library.",
		"",
		"Notes",
		"-----",
		fmt.Sprintf("#.  Written by Jane Doe in %s %s.", monthName, yearText),
		`"""`,
		"",
		"# %% Imports",
		"import unittest",
		"",
		"import myrepo",
		"",
		"",
		"# %% one",
		"class Test_one(unittest.TestCase):",
		`    r"""`,
		"    Tests the one function with the following cases:",
		"        TBD",
		`    """`,
		"",
		"    pass  # TODO: write this",
		"",
		"",
		"# %% alpha._hidden",
		"class Test_alpha__hidden(unittest.TestCase):",
		`    r"""`,
		"    Tests the alpha._hidden function with the following cases:",
		"        TBD",
		`    """`,
		"",
		"    pass  # TODO: write this",
		"",
		"",
		"# %% Unit test execution",
		`if __name__ == "__main__":`,
		"    unittest.main(exit=False)",
		"",
	}, "\n")

	generatedBytes, readError := os.ReadFile(generatedPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, expectedDocument, string(generatedBytes))
}

func TestServiceWriteRecursiveNestedModule(testInstance *testing.T) {
	repositoryDirectory := filepath.Join(testInstance.TempDir(), "myrepo")
	nestedDirectory := filepath.Join(repositoryDirectory, "sub")
	require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(nestedDirectory, "beta.py"), []byte("def compute():\n    pass\n"), 0o644))
	outputDirectory := filepath.Join(testInstance.TempDir(), "generated")

	var progressOutput bytes.Buffer
	service := skeleton.NewService(&progressOutput)
	writeError := service.Write(skeleton.GeneratorOptions{
		Folder:        repositoryDirectory,
		OutputFolder:  outputDirectory,
		Author:        "Jane Doe",
		Recursive:     true,
		Substitutions: map[string]string{"myrepo.sub": "ms"},
	})
	require.NoError(testInstance, writeError)

	generatedPath := filepath.Join(outputDirectory, "test_sub_beta.py")
	generatedBytes, readError := os.ReadFile(generatedPath)
	require.NoError(testInstance, readError)
	generatedText := string(generatedBytes)

	require.Contains(testInstance, generatedText, "Test file for the `beta` module of the \"myrepo.sub\" library.")
	require.Contains(testInstance, generatedText, "import myrepo.sub as ms")
	require.Contains(testInstance, generatedText, "# %% sub.compute")
	require.Contains(testInstance, generatedText, "class Test_sub_compute(unittest.TestCase):")
}

func TestServiceWriteBuiltinImportAlias(testInstance *testing.T) {
	repositoryDirectory := filepath.Join(testInstance.TempDir(), "dstauffman")
	require.NoError(testInstance, os.MkdirAll(repositoryDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryDirectory, "gamma.py"), []byte("def run():\n    pass\n"), 0o644))
	outputDirectory := filepath.Join(testInstance.TempDir(), "generated")

	service := skeleton.NewService(nil)
	writeError := service.Write(skeleton.GeneratorOptions{
		Folder:       repositoryDirectory,
		OutputFolder: outputDirectory,
		Author:       "Jane Doe",
	})
	require.NoError(testInstance, writeError)

	generatedBytes, readError := os.ReadFile(filepath.Join(outputDirectory, "test_gamma.py"))
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(generatedBytes), "import dstauffman as dcs")
}

func TestServiceWriteClassificationHeader(testInstance *testing.T) {
	repositoryDirectory := filepath.Join(testInstance.TempDir(), "myrepo")
	require.NoError(testInstance, os.MkdirAll(repositoryDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryDirectory, "delta.py"), []byte("def run():\n    pass\n"), 0o644))
	outputDirectory := filepath.Join(testInstance.TempDir(), "generated")

	service := skeleton.NewService(nil)
	writeError := service.Write(skeleton.GeneratorOptions{
		Folder:                  repositoryDirectory,
		OutputFolder:            outputDirectory,
		Author:                  "Jane Doe",
		AddClassificationHeader: true,
	})
	require.NoError(testInstance, writeError)

	generatedBytes, readError := os.ReadFile(filepath.Join(outputDirectory, "test_delta.py"))
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(generatedBytes), "Classification\n--------------\nTBD")
}

func TestServiceWriteSkipsExcludedAndOutputPaths(testInstance *testing.T) {
	repositoryDirectory := filepath.Join(testInstance.TempDir(), "myrepo")
	excludedDirectory := filepath.Join(repositoryDirectory, "vendor")
	outputDirectory := filepath.Join(repositoryDirectory, "tests")
	require.NoError(testInstance, os.MkdirAll(excludedDirectory, 0o755))
	require.NoError(testInstance, os.MkdirAll(outputDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryDirectory, "kept.py"), []byte("def keep():\n    pass\n"), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(excludedDirectory, "skipped.py"), []byte("def skip():\n    pass\n"), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(outputDirectory, "test_old.py"), []byte("def stale():\n    pass\n"), 0o644))

	var progressOutput bytes.Buffer
	service := skeleton.NewService(&progressOutput)
	writeError := service.Write(skeleton.GeneratorOptions{
		Folder:       repositoryDirectory,
		OutputFolder: outputDirectory,
		Author:       "Jane Doe",
		ExcludePaths: []string{excludedDirectory},
		Recursive:    true,
	})
	require.NoError(testInstance, writeError)

	progressText := progressOutput.String()
	require.Contains(testInstance, progressText, "test_kept.py")
	require.NotContains(testInstance, progressText, "skipped")
	require.NotContains(testInstance, progressText, "test_old")

	_, statError := os.Stat(filepath.Join(outputDirectory, "test_vendor_skipped.py"))
	require.True(testInstance, os.IsNotExist(statError))
}

func TestServiceWriteEmptyModuleStillProducesDocument(testInstance *testing.T) {
	repositoryDirectory := filepath.Join(testInstance.TempDir(), "myrepo")
	require.NoError(testInstance, os.MkdirAll(repositoryDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryDirectory, "bare.py"), []byte("# commentary only\n"), 0o644))
	outputDirectory := filepath.Join(testInstance.TempDir(), "generated")

	service := skeleton.NewService(nil)
	writeError := service.Write(skeleton.GeneratorOptions{
		Folder:       repositoryDirectory,
		OutputFolder: outputDirectory,
		Author:       "Jane Doe",
	})
	require.NoError(testInstance, writeError)

	generatedBytes, readError := os.ReadFile(filepath.Join(outputDirectory, "test_bare.py"))
	require.NoError(testInstance, readError)
	generatedText := string(generatedBytes)
	require.Contains(testInstance, generatedText, "import myrepo")
	require.NotContains(testInstance, generatedText, "unittest.TestCase")
	require.Contains(testInstance, generatedText, "unittest.main(exit=False)")
}
