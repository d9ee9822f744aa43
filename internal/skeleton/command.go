package skeleton

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoheal/internal/utils"
	pathutils "github.com/temirov/repoheal/internal/utils/path"
)

const (
	commandUseConstant                  = "write-tests folder"
	commandShortDescriptionConstant     = "Write placeholder unit-test files"
	commandLongDescriptionConstant      = "Write one placeholder unit-test file per source file found in the given folder, ready to diff against the real test suite."
	flagAuthorNameConstant              = "author"
	flagAuthorShorthandConstant         = "a"
	flagAuthorUsageConstant             = "Author of the test files."
	flagExcludeNameConstant             = "exclude"
	flagExcludeShorthandConstant        = "e"
	flagExcludeUsageConstant            = "Folders to exclude from processing."
	flagRecursiveNameConstant           = "recursive"
	flagRecursiveShorthandConstant      = "r"
	flagRecursiveUsageConstant          = "Process folders recursively."
	flagSubstitutionNameConstant        = "subs"
	flagSubstitutionShorthandConstant   = "s"
	flagSubstitutionUsageConstant       = "Import aliases to substitute, as OLD,NEW pairs."
	flagClassificationNameConstant      = "classification"
	flagClassificationShorthandConstant = "c"
	flagClassificationUsageConstant     = "Add a classification header to each file."
	flagOutputNameConstant              = "output"
	flagOutputShorthandConstant         = "o"
	flagOutputUsageConstant             = "Output folder to produce, default is tests."
	substitutionPairSeparatorConstant   = ","
	substitutionErrorTemplateConstant   = "invalid substitution %q, expected OLD,NEW"
	skeletonsWrittenMessageConstant     = "test skeletons written"
	logFieldSkeletonFolderConstant      = "folder"
	logFieldSkeletonOutputConstant      = "output_folder"
	logFieldSkeletonRecursiveConstant   = "recursive"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted write-tests configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the write-tests cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	PathSanitizer         *pathutils.ScanPathSanitizer
}

// Build constructs the cobra command for skeleton generation.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringP(flagAuthorNameConstant, flagAuthorShorthandConstant, defaultAuthorNameConstant, flagAuthorUsageConstant)
	command.Flags().StringArrayP(flagExcludeNameConstant, flagExcludeShorthandConstant, nil, flagExcludeUsageConstant)
	command.Flags().BoolP(flagRecursiveNameConstant, flagRecursiveShorthandConstant, false, flagRecursiveUsageConstant)
	command.Flags().StringArrayP(flagSubstitutionNameConstant, flagSubstitutionShorthandConstant, nil, flagSubstitutionUsageConstant)
	command.Flags().BoolP(flagClassificationNameConstant, flagClassificationShorthandConstant, false, flagClassificationUsageConstant)
	command.Flags().StringP(flagOutputNameConstant, flagOutputShorthandConstant, defaultOutputFolderNameConstant, flagOutputUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration().sanitize()
	sanitizer := builder.resolvePathSanitizer()

	authorValue := configuration.Author
	if command.Flags().Changed(flagAuthorNameConstant) {
		authorValue, _ = command.Flags().GetString(flagAuthorNameConstant)
	}

	outputValue := configuration.Output
	if command.Flags().Changed(flagOutputNameConstant) {
		outputValue, _ = command.Flags().GetString(flagOutputNameConstant)
	}

	recursiveValue := configuration.Recursive
	if command.Flags().Changed(flagRecursiveNameConstant) {
		recursiveValue, _ = command.Flags().GetBool(flagRecursiveNameConstant)
	}

	excludeValues, _ := command.Flags().GetStringArray(flagExcludeNameConstant)
	substitutionPairs, _ := command.Flags().GetStringArray(flagSubstitutionNameConstant)
	addClassificationValue, _ := command.Flags().GetBool(flagClassificationNameConstant)

	substitutions, substitutionError := parseSubstitutionPairs(substitutionPairs)
	if substitutionError != nil {
		return substitutionError
	}

	folderPath := sanitizer.SanitizeOne(arguments[0])
	outputPath := sanitizer.SanitizeOne(outputValue)
	excludePaths := sanitizer.Sanitize(excludeValues)

	service := NewService(utils.NewFlushingWriter(command.OutOrStdout()))
	writeError := service.Write(GeneratorOptions{
		Folder:                  folderPath,
		OutputFolder:            outputPath,
		Author:                  authorValue,
		ExcludePaths:            excludePaths,
		Recursive:               recursiveValue,
		Substitutions:           substitutions,
		AddClassificationHeader: addClassificationValue,
	})
	if writeError != nil {
		return writeError
	}

	builder.resolveLogger().Debug(
		skeletonsWrittenMessageConstant,
		zap.String(logFieldSkeletonFolderConstant, folderPath),
		zap.String(logFieldSkeletonOutputConstant, outputPath),
		zap.Bool(logFieldSkeletonRecursiveConstant, recursiveValue),
	)

	return nil
}

// parseSubstitutionPairs converts OLD,NEW strings into a substitution map.
func parseSubstitutionPairs(substitutionPairs []string) (map[string]string, error) {
	if len(substitutionPairs) == 0 {
		return nil, nil
	}
	substitutions := make(map[string]string, len(substitutionPairs))
	for _, substitutionPair := range substitutionPairs {
		dottedPath, importAlias, separatorFound := strings.Cut(substitutionPair, substitutionPairSeparatorConstant)
		if !separatorFound || len(dottedPath) == 0 || len(importAlias) == 0 {
			return nil, fmt.Errorf(substitutionErrorTemplateConstant, substitutionPair)
		}
		substitutions[dottedPath] = importAlias
	}
	return substitutions, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolvePathSanitizer() *pathutils.ScanPathSanitizer {
	if builder.PathSanitizer == nil {
		return pathutils.NewScanPathSanitizer()
	}
	return builder.PathSanitizer
}
