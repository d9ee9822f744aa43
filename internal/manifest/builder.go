package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/repoheal/internal/inventory"
	"github.com/temirov/repoheal/internal/textwrap"
)

const (
	sourceFileExtensionConstant          = ".py"
	defaultOutputFileNameConstant        = "__init__.py"
	importHeaderPrefixConstant           = "from ."
	importHeaderSuffixConstant           = " import "
	importIndentBaseConstant             = "from . import "
	importIndentPaddingConstant          = 4
	declarationSeparatorConstant         = ", "
	renderedLineSeparatorConstant        = "\n"
	paddingCharacterConstant             = " "
	uniquenessWarningTemplateConstant    = "Uniqueness Problem: %d functions, but only %d unique functions\n"
	duplicatedFunctionsHeaderConstant    = "Duplicated functions:\n"
	duplicatedFunctionsLineTemplate      = "%s\n"
	folderListErrorTemplateConstant      = "unable to list folder %s: %w"
	sourceFileReadErrorTemplateConstant  = "unable to read source file %s: %w"
	manifestWriteErrorTemplateConstant   = "unable to write manifest %s: %w"
	manifestOutputFilePermissionConstant = 0o644
)

// ModuleDeclarations maps a module name (file stem) to its ordered public
// declaration names. Module names are unique within one generator run.
type ModuleDeclarations map[string][]string

// GeneratorOptions captures the configurable parameters for one manifest build.
type GeneratorOptions struct {
	Folder     string
	Lineup     bool
	WrapColumn int
	OutputPath string
}

// Generator builds manifests, streaming advisory warnings to its writer.
type Generator struct {
	warningWriter io.Writer
}

// NewGenerator constructs a Generator reporting warnings to the provided writer.
func NewGenerator(warningWriter io.Writer) *Generator {
	if warningWriter == nil {
		warningWriter = io.Discard
	}
	return &Generator{warningWriter: warningWriter}
}

// Build collects declarations from the folder's direct source files, reports
// duplicate names across modules, renders the wrapped manifest text, and
// writes it to the output path when one is supplied. The returned text is
// empty when no file yielded declarations. A wrap-width violation aborts the
// build before anything is written.
func (generator *Generator) Build(options GeneratorOptions) (string, error) {
	outputFileName := defaultOutputFileNameConstant
	if len(options.OutputPath) > 0 {
		outputFileName = filepath.Base(options.OutputPath)
	}

	moduleDeclarations, collectError := CollectModuleDeclarations(options.Folder, outputFileName)
	if collectError != nil {
		return "", collectError
	}
	if len(moduleDeclarations) == 0 {
		return "", nil
	}

	generator.reportDuplicates(moduleDeclarations)

	renderedText, renderError := Render(moduleDeclarations, options.Lineup, options.WrapColumn)
	if renderError != nil {
		return "", renderError
	}

	if len(options.OutputPath) > 0 {
		writeError := os.WriteFile(options.OutputPath, []byte(renderedText+renderedLineSeparatorConstant), manifestOutputFilePermissionConstant)
		if writeError != nil {
			return "", fmt.Errorf(manifestWriteErrorTemplateConstant, options.OutputPath, writeError)
		}
	}

	return renderedText, nil
}

// CollectModuleDeclarations lists the folder's direct children (non-recursive)
// and extracts the public declarations of every source file, keyed by file
// stem. Files matching the target output name and files without declarations
// are skipped.
func CollectModuleDeclarations(folder string, outputFileName string) (ModuleDeclarations, error) {
	directoryEntries, listError := os.ReadDir(folder)
	if listError != nil {
		return nil, fmt.Errorf(folderListErrorTemplateConstant, folder, listError)
	}

	moduleDeclarations := ModuleDeclarations{}
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		fileName := directoryEntry.Name()
		if !strings.HasSuffix(fileName, sourceFileExtensionConstant) {
			continue
		}
		if fileName == outputFileName {
			continue
		}

		filePath := filepath.Join(folder, fileName)
		contentBytes, readError := os.ReadFile(filePath)
		if readError != nil {
			return nil, fmt.Errorf(sourceFileReadErrorTemplateConstant, filePath, readError)
		}

		declarations := inventory.Extract(string(contentBytes), false)
		if len(declarations) == 0 {
			continue
		}

		moduleName := strings.TrimSuffix(fileName, sourceFileExtensionConstant)
		moduleDeclarations[moduleName] = inventory.Names(declarations)
	}

	return moduleDeclarations, nil
}

// FindDuplicateNames returns the sorted set of names appearing more than once
// in the flattened list. Pure; detection is independent of rendering.
func FindDuplicateNames(flattenedNames []string) []string {
	nameCounts := make(map[string]int, len(flattenedNames))
	for _, declarationName := range flattenedNames {
		nameCounts[declarationName]++
	}

	duplicatedNames := []string{}
	for declarationName, nameCount := range nameCounts {
		if nameCount > 1 {
			duplicatedNames = append(duplicatedNames, declarationName)
		}
	}
	sort.Strings(duplicatedNames)
	return duplicatedNames
}

// Render produces the wrapped manifest text for the aggregated declarations,
// sorted by module name. Continuation lines align to a fixed indent derived
// from the longest module name regardless of the lineup setting.
func Render(moduleDeclarations ModuleDeclarations, lineup bool, wrapColumn int) (string, error) {
	moduleNames := sortedModuleNames(moduleDeclarations)

	maximumModuleNameLength := 0
	for _, moduleName := range moduleNames {
		if len(moduleName) > maximumModuleNameLength {
			maximumModuleNameLength = len(moduleName)
		}
	}
	indentColumn := len(importIndentBaseConstant) + maximumModuleNameLength + importIndentPaddingConstant

	renderedLines := []string{}
	for _, moduleName := range moduleNames {
		padding := ""
		if lineup {
			padding = strings.Repeat(paddingCharacterConstant, maximumModuleNameLength-len(moduleName))
		}
		header := importHeaderPrefixConstant + moduleName + padding + importHeaderSuffixConstant
		combinedLine := header + strings.Join(moduleDeclarations[moduleName], declarationSeparatorConstant)

		wrappedLines, wrapError := textwrap.Wrap([]string{combinedLine}, wrapColumn, len(header), indentColumn)
		if wrapError != nil {
			return "", wrapError
		}
		renderedLines = append(renderedLines, wrappedLines...)
	}

	return strings.Join(renderedLines, renderedLineSeparatorConstant), nil
}

func (generator *Generator) reportDuplicates(moduleDeclarations ModuleDeclarations) {
	flattenedNames := []string{}
	for _, moduleName := range sortedModuleNames(moduleDeclarations) {
		flattenedNames = append(flattenedNames, moduleDeclarations[moduleName]...)
	}

	duplicatedNames := FindDuplicateNames(flattenedNames)
	if len(duplicatedNames) == 0 {
		return
	}

	uniqueCount := len(flattenedNames) - countExtraOccurrences(flattenedNames)
	fmt.Fprintf(generator.warningWriter, uniquenessWarningTemplateConstant, len(flattenedNames), uniqueCount)
	fmt.Fprint(generator.warningWriter, duplicatedFunctionsHeaderConstant)
	fmt.Fprintf(generator.warningWriter, duplicatedFunctionsLineTemplate, strings.Join(duplicatedNames, declarationSeparatorConstant))
}

func countExtraOccurrences(flattenedNames []string) int {
	nameCounts := make(map[string]int, len(flattenedNames))
	for _, declarationName := range flattenedNames {
		nameCounts[declarationName]++
	}

	extraOccurrences := 0
	for _, nameCount := range nameCounts {
		if nameCount > 1 {
			extraOccurrences += nameCount - 1
		}
	}
	return extraOccurrences
}

func sortedModuleNames(moduleDeclarations ModuleDeclarations) []string {
	moduleNames := make([]string, 0, len(moduleDeclarations))
	for moduleName := range moduleDeclarations {
		moduleNames = append(moduleNames, moduleName)
	}
	sort.Strings(moduleNames)
	return moduleNames
}
