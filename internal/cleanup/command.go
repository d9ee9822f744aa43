package cleanup

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoheal/internal/utils"
	pathutils "github.com/temirov/repoheal/internal/utils/path"
)

const (
	commandUseConstant               = "delete-pyc folder"
	commandShortDescriptionConstant  = "Delete compiled byte-code files"
	commandLongDescriptionConstant   = "Delete all the *.pyc byte-code files in the given folder."
	flagRecursiveNameConstant        = "recursive"
	flagRecursiveShorthandConstant   = "r"
	flagRecursiveUsageConstant       = "Delete files recursively."
	flagPrintNameConstant            = "print"
	flagPrintShorthandConstant       = "p"
	flagPrintUsageConstant           = "Display information about any deleted files."
	cleanupFinishedMessageConstant   = "byte-code cleanup finished"
	logFieldCleanupFolderConstant    = "folder"
	logFieldCleanupRecursiveConstant = "recursive"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted delete-pyc configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the delete-pyc cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	PathSanitizer         *pathutils.ScanPathSanitizer
}

// Build constructs the cobra command for byte-code cleanup.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().BoolP(flagRecursiveNameConstant, flagRecursiveShorthandConstant, false, flagRecursiveUsageConstant)
	command.Flags().BoolP(flagPrintNameConstant, flagPrintShorthandConstant, false, flagPrintUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration().sanitize()
	sanitizer := builder.resolvePathSanitizer()

	recursiveValue := configuration.Recursive
	if command.Flags().Changed(flagRecursiveNameConstant) {
		recursiveValue, _ = command.Flags().GetBool(flagRecursiveNameConstant)
	}

	printValue := configuration.Print
	if command.Flags().Changed(flagPrintNameConstant) {
		printValue, _ = command.Flags().GetBool(flagPrintNameConstant)
	}

	folderPath := sanitizer.SanitizeOne(arguments[0])

	service := NewService(utils.NewFlushingWriter(command.OutOrStdout()))
	deletionError := service.Delete(DeletionOptions{
		Folder:        folderPath,
		Recursive:     recursiveValue,
		PrintProgress: printValue,
	})
	if deletionError != nil {
		return deletionError
	}

	builder.resolveLogger().Debug(
		cleanupFinishedMessageConstant,
		zap.String(logFieldCleanupFolderConstant, folderPath),
		zap.Bool(logFieldCleanupRecursiveConstant, recursiveValue),
	)

	return nil
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
