package manifest

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoheal/internal/utils"
	pathutils "github.com/temirov/repoheal/internal/utils/path"
)

const (
	commandUseConstant                = "make-init folder"
	commandShortDescriptionConstant   = "Generate an aggregating import manifest"
	commandLongDescriptionConstant    = "Generate an __init__.py-style import manifest for the given folder from the declarations found in its source files."
	flagLineupNameConstant            = "lineup"
	flagLineupShorthandConstant       = "l"
	flagLineupUsageConstant           = "Line up the imports between files."
	flagWrapNameConstant              = "wrap"
	flagWrapShorthandConstant         = "w"
	flagWrapUsageConstant             = "Column to wrap the generated lines at."
	flagDryRunNameConstant            = "dry-run"
	flagDryRunShorthandConstant       = "n"
	flagDryRunUsageConstant           = "Show what would be generated without doing it."
	flagOutfileNameConstant           = "outfile"
	flagOutfileShorthandConstant      = "o"
	flagOutfileUsageConstant          = "Output file to produce, default is __init__.py."
	dryRunMessageTemplateConstant     = "Would generate \"%s\" from \"%s\" (lineup=%t, wrap=%d)\n"
	noDeclarationsErrorTemplate       = "no declarations found in %s"
	manifestGeneratedMessageConstant  = "manifest generated"
	logFieldManifestFolderConstant    = "folder"
	logFieldManifestOutputConstant    = "output_path"
	logFieldManifestWrapConstant      = "wrap_column"
	logFieldManifestSizeConstant      = "rendered_bytes"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted make-init configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the make-init cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	PathSanitizer         *pathutils.ScanPathSanitizer
}

// Build constructs the cobra command for manifest generation.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().BoolP(flagLineupNameConstant, flagLineupShorthandConstant, false, flagLineupUsageConstant)
	command.Flags().IntP(flagWrapNameConstant, flagWrapShorthandConstant, defaultWrapColumnConstant, flagWrapUsageConstant)
	command.Flags().BoolP(flagDryRunNameConstant, flagDryRunShorthandConstant, false, flagDryRunUsageConstant)
	command.Flags().StringP(flagOutfileNameConstant, flagOutfileShorthandConstant, defaultOutputFileNameConstant, flagOutfileUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration().sanitize()
	sanitizer := builder.resolvePathSanitizer()

	lineupValue := configuration.Lineup
	if command.Flags().Changed(flagLineupNameConstant) {
		lineupValue, _ = command.Flags().GetBool(flagLineupNameConstant)
	}

	wrapValue := configuration.Wrap
	if command.Flags().Changed(flagWrapNameConstant) {
		wrapValue, _ = command.Flags().GetInt(flagWrapNameConstant)
	}

	outfileValue := configuration.Outfile
	if command.Flags().Changed(flagOutfileNameConstant) {
		outfileValue, _ = command.Flags().GetString(flagOutfileNameConstant)
	}

	dryRunValue, _ := command.Flags().GetBool(flagDryRunNameConstant)

	folderPath := sanitizer.SanitizeOne(arguments[0])
	outputPath := sanitizer.SanitizeOne(outfileValue)

	if dryRunValue {
		fmt.Fprintf(command.OutOrStdout(), dryRunMessageTemplateConstant, outputPath, folderPath, lineupValue, wrapValue)
		return nil
	}

	generator := NewGenerator(utils.NewFlushingWriter(command.OutOrStdout()))
	renderedText, buildError := generator.Build(GeneratorOptions{
		Folder:     folderPath,
		Lineup:     lineupValue,
		WrapColumn: wrapValue,
		OutputPath: outputPath,
	})
	if buildError != nil {
		return buildError
	}
	if len(renderedText) == 0 {
		return fmt.Errorf(noDeclarationsErrorTemplate, folderPath)
	}

	builder.resolveLogger().Debug(
		manifestGeneratedMessageConstant,
		zap.String(logFieldManifestFolderConstant, folderPath),
		zap.String(logFieldManifestOutputConstant, outputPath),
		zap.Int(logFieldManifestWrapConstant, wrapValue),
		zap.Int(logFieldManifestSizeConstant, len(renderedText)),
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
