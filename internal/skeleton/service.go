package skeleton

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/repoheal/internal/inventory"
)

const (
	sourceFileExtensionConstant        = ".py"
	generatedFileNamePrefixConstant    = "test_"
	generatedNameComponentJoinConstant = "_"
	dottedPathSeparatorConstant        = "."
	flattenedNameSeparatorConstant     = "_"
	documentLineSeparatorConstant      = "\n"
	progressMessageTemplateConstant    = "Writing: \"%s\".\n"
	outputFolderPermissionConstant     = 0o755
	generatedFilePermissionConstant    = 0o644
	outputSetupErrorTemplateConstant   = "unable to create output folder %s: %w"
	folderListErrorTemplateConstant    = "unable to list folder %s: %w"
	sourceReadErrorTemplateConstant    = "unable to read source file %s: %w"
	skeletonWriteErrorTemplateConstant = "unable to write test skeleton %s: %w"
	relativePathErrorTemplateConstant  = "unable to relativize %s against %s: %w"
)

// builtinSubstitutions maps dotted library paths to the import aliases their
// consumers conventionally use. Caller-supplied pairs override these.
var builtinSubstitutions = map[string]string{
	"dstauffman":            "dcs",
	"dstauffman.aerospace":  "space",
	"dstauffman.commands":   "commands",
	"dstauffman.estimation": "estm",
	"dstauffman.health":     "health",
	"dstauffman.plotting":   "plot",
}

// GeneratorOptions captures the configurable parameters for one skeleton run.
type GeneratorOptions struct {
	Folder                  string
	OutputFolder            string
	Author                  string
	ExcludePaths            []string
	Recursive               bool
	Substitutions           map[string]string
	AddClassificationHeader bool
}

// Service writes test-skeleton files, streaming progress to its writer.
type Service struct {
	outputWriter io.Writer
	currentTime  func() time.Time
}

// NewService constructs a Service reporting progress to the provided writer.
func NewService(outputWriter io.Writer) *Service {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Service{outputWriter: outputWriter, currentTime: time.Now}
}

// Write generates one placeholder test file per source file under the folder.
// Files under an excluded path or under the output folder are skipped. A
// source file without declarations still produces a header-and-footer
// document.
func (service *Service) Write(options GeneratorOptions) error {
	setupError := os.MkdirAll(options.OutputFolder, outputFolderPermissionConstant)
	if setupError != nil {
		return fmt.Errorf(outputSetupErrorTemplateConstant, options.OutputFolder, setupError)
	}

	sourceFilePaths, listError := listSourceFiles(options.Folder, options.Recursive)
	if listError != nil {
		return listError
	}

	substitutions := mergeSubstitutions(options.Substitutions)
	repositoryName := filepath.Base(options.Folder)
	generationTime := service.currentTime()
	monthName := generationTime.Month().String()
	yearText := strconv.Itoa(generationTime.Year())

	for _, sourceFilePath := range sourceFilePaths {
		if pathIsUnderAny(sourceFilePath, options.ExcludePaths) {
			continue
		}
		if pathIsUnder(sourceFilePath, options.OutputFolder) {
			continue
		}

		contentBytes, readError := os.ReadFile(sourceFilePath)
		if readError != nil {
			return fmt.Errorf(sourceReadErrorTemplateConstant, sourceFilePath, readError)
		}
		declarationNames := inventory.Names(inventory.Extract(string(contentBytes), true))

		relativePath, relativeError := filepath.Rel(options.Folder, sourceFilePath)
		if relativeError != nil {
			return fmt.Errorf(relativePathErrorTemplateConstant, sourceFilePath, options.Folder, relativeError)
		}
		pathComponents := strings.Split(filepath.ToSlash(relativePath), "/")

		documentText := renderDocument(documentParameters{
			pathComponents:          pathComponents,
			repositoryName:          repositoryName,
			declarationNames:        declarationNames,
			author:                  options.Author,
			monthName:               monthName,
			yearText:                yearText,
			substitutions:           substitutions,
			addClassificationHeader: options.AddClassificationHeader,
		})

		generatedFileName := generatedFileNamePrefixConstant + strings.Join(pathComponents, generatedNameComponentJoinConstant)
		generatedFilePath := filepath.Join(options.OutputFolder, generatedFileName)
		fmt.Fprintf(service.outputWriter, progressMessageTemplateConstant, generatedFilePath)

		writeError := os.WriteFile(generatedFilePath, []byte(documentText), generatedFilePermissionConstant)
		if writeError != nil {
			return fmt.Errorf(skeletonWriteErrorTemplateConstant, generatedFilePath, writeError)
		}
	}

	return nil
}

type documentParameters struct {
	pathComponents          []string
	repositoryName          string
	declarationNames        []string
	author                  string
	monthName               string
	yearText                string
	substitutions           map[string]string
	addClassificationHeader bool
}

// renderDocument assembles the full skeleton text for one source file. The
// final empty line yields a trailing newline after joining.
func renderDocument(parameters documentParameters) string {
	moduleStem := strings.TrimSuffix(parameters.pathComponents[len(parameters.pathComponents)-1], sourceFileExtensionConstant)
	subRepositoryPath := strings.Join(parameters.pathComponents[:len(parameters.pathComponents)-1], dottedPathSeparatorConstant)
	libraryPath := parameters.repositoryName
	if len(subRepositoryPath) > 0 {
		libraryPath += dottedPathSeparatorConstant + subRepositoryPath
	}

	documentLines := []string{
		`r"""`,
		fmt.Sprintf("Test file for the `%s` module of the \"%s\" library.", moduleStem, libraryPath),
		"",
		"Notes",
		"-----",
		fmt.Sprintf("#.  Written by %s in %s %s.", parameters.author, parameters.monthName, parameters.yearText),
	}
	if parameters.addClassificationHeader {
		documentLines = append(documentLines, "", "Classification", "--------------", "TBD")
	}
	documentLines = append(documentLines, `"""`, "", "# %% Imports", "import unittest", "")

	importLine := "import " + libraryPath
	if importAlias, aliasFound := parameters.substitutions[libraryPath]; aliasFound {
		importLine += " as " + importAlias
	}
	documentLines = append(documentLines, importLine, "", "")

	for _, declarationName := range parameters.declarationNames {
		if strings.HasPrefix(declarationName, "_") {
			declarationName = moduleStem + dottedPathSeparatorConstant + declarationName
		}
		dottedName := declarationName
		if len(subRepositoryPath) > 0 {
			dottedName = subRepositoryPath + dottedPathSeparatorConstant + declarationName
		}
		flattenedName := strings.ReplaceAll(dottedName, dottedPathSeparatorConstant, flattenedNameSeparatorConstant)

		documentLines = append(documentLines,
			"# %% "+dottedName,
			"class Test_"+flattenedName+"(unittest.TestCase):",
			`    r"""`,
			"    Tests the "+dottedName+" function with the following cases:",
			"        TBD",
			`    """`,
			"",
			"    pass  # TODO: write this",
			"",
			"",
		)
	}

	documentLines = append(documentLines,
		"# %% Unit test execution",
		`if __name__ == "__main__":`,
		"    unittest.main(exit=False)",
		"",
	)

	return strings.Join(documentLines, documentLineSeparatorConstant)
}

// mergeSubstitutions overlays caller pairs onto the built-in table.
func mergeSubstitutions(callerSubstitutions map[string]string) map[string]string {
	merged := make(map[string]string, len(builtinSubstitutions)+len(callerSubstitutions))
	for dottedPath, importAlias := range builtinSubstitutions {
		merged[dottedPath] = importAlias
	}
	for dottedPath, importAlias := range callerSubstitutions {
		merged[dottedPath] = importAlias
	}
	return merged
}

// listSourceFiles returns the sorted source file paths under the folder,
// direct children only unless recursive.
func listSourceFiles(folder string, recursive bool) ([]string, error) {
	sourceFilePaths := []string{}

	if recursive {
		walkError := filepath.WalkDir(folder, func(candidatePath string, directoryEntry fs.DirEntry, visitError error) error {
			if visitError != nil {
				return visitError
			}
			if directoryEntry.IsDir() {
				return nil
			}
			if strings.HasSuffix(directoryEntry.Name(), sourceFileExtensionConstant) {
				sourceFilePaths = append(sourceFilePaths, candidatePath)
			}
			return nil
		})
		if walkError != nil {
			return nil, fmt.Errorf(folderListErrorTemplateConstant, folder, walkError)
		}
	} else {
		directoryEntries, listError := os.ReadDir(folder)
		if listError != nil {
			return nil, fmt.Errorf(folderListErrorTemplateConstant, folder, listError)
		}
		for _, directoryEntry := range directoryEntries {
			if directoryEntry.IsDir() {
				continue
			}
			if strings.HasSuffix(directoryEntry.Name(), sourceFileExtensionConstant) {
				sourceFilePaths = append(sourceFilePaths, filepath.Join(folder, directoryEntry.Name()))
			}
		}
	}

	sort.Strings(sourceFilePaths)
	return sourceFilePaths, nil
}

// pathIsUnder reports whether the candidate lies strictly below the ancestor.
func pathIsUnder(candidatePath string, ancestorPath string) bool {
	relativePath, relativeError := filepath.Rel(ancestorPath, candidatePath)
	if relativeError != nil {
		return false
	}
	if relativePath == "." || relativePath == ".." {
		return false
	}
	return !strings.HasPrefix(relativePath, ".."+string(filepath.Separator))
}

func pathIsUnderAny(candidatePath string, ancestorPaths []string) bool {
	for _, ancestorPath := range ancestorPaths {
		if pathIsUnder(candidatePath, ancestorPath) {
			return true
		}
	}
	return false
}
