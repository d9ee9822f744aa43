package enforce

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoheal/internal/utils"
	pathutils "github.com/temirov/repoheal/internal/utils/path"
)

const (
	commandUseConstant               = "enforce folder"
	commandShortDescriptionConstant  = "Enforce repository hygiene standards"
	commandLongDescriptionConstant   = "Enforce consistency in the repository for things like tabs, trailing whitespace, line endings, and file execute permissions."
	flagExtensionsNameConstant       = "extensions"
	flagExtensionsShorthandConstant  = "e"
	flagExtensionsUsageConstant      = "Extensions to search through."
	flagListAllNameConstant          = "list-all"
	flagListAllShorthandConstant     = "l"
	flagListAllUsageConstant         = "List all files, even ones without problems."
	flagIgnoreTabsNameConstant       = "ignore-tabs"
	flagIgnoreTabsShorthandConstant  = "i"
	flagIgnoreTabsUsageConstant      = "Ignore tabs within the source code."
	flagTrailingNameConstant         = "trailing"
	flagTrailingShorthandConstant    = "t"
	flagTrailingUsageConstant        = "Show files with trailing whitespace."
	flagSkipNameConstant             = "skip"
	flagSkipShorthandConstant        = "s"
	flagSkipUsageConstant            = "Exclusions to not search."
	flagWindowsNameConstant          = "windows"
	flagWindowsShorthandConstant     = "w"
	flagWindowsUsageConstant         = "Use Windows (CRLF) line endings."
	flagUnixNameConstant             = "unix"
	flagUnixShorthandConstant        = "u"
	flagUnixUsageConstant            = "Use Unix (LF) line endings."
	flagExecuteNameConstant          = "execute"
	flagExecuteShorthandConstant     = "x"
	flagExecuteUsageConstant         = "List files with execute permissions."
	allExtensionsSentinelConstant    = "*"
	windowsLineEndingConstant        = "\r\n"
	unixLineEndingConstant           = "\n"
	uncleanRepositoryMessageConstant = "repository hygiene issues found"
	scanCompletedMessageConstant     = "repository scan completed"
	logFieldScanRootConstant         = "scan_root"
	logFieldCleanConstant            = "clean"
	logFieldIssueCountConstant       = "issue_count"
)

var defaultSourceExtensions = []string{".m", ".py"}

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted enforce configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the enforce cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	PathSanitizer         *pathutils.ScanPathSanitizer
}

// Build constructs the cobra command for the repository hygiene scan.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringArrayP(flagExtensionsNameConstant, flagExtensionsShorthandConstant, nil, flagExtensionsUsageConstant)
	command.Flags().BoolP(flagListAllNameConstant, flagListAllShorthandConstant, false, flagListAllUsageConstant)
	command.Flags().BoolP(flagIgnoreTabsNameConstant, flagIgnoreTabsShorthandConstant, false, flagIgnoreTabsUsageConstant)
	command.Flags().BoolP(flagTrailingNameConstant, flagTrailingShorthandConstant, false, flagTrailingUsageConstant)
	command.Flags().StringArrayP(flagSkipNameConstant, flagSkipShorthandConstant, nil, flagSkipUsageConstant)
	command.Flags().BoolP(flagWindowsNameConstant, flagWindowsShorthandConstant, false, flagWindowsUsageConstant)
	command.Flags().BoolP(flagUnixNameConstant, flagUnixShorthandConstant, false, flagUnixUsageConstant)
	command.Flags().BoolP(flagExecuteNameConstant, flagExecuteShorthandConstant, false, flagExecuteUsageConstant)
	command.MarkFlagsMutuallyExclusive(flagWindowsNameConstant, flagUnixNameConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	service := NewService(utils.NewFlushingWriter(command.OutOrStdout()))
	verdict, scanError := service.Scan(options)
	if scanError != nil {
		return scanError
	}

	logger := builder.resolveLogger()
	logger.Debug(
		scanCompletedMessageConstant,
		zap.String(logFieldScanRootConstant, options.Root),
		zap.Bool(logFieldCleanConstant, verdict.Clean),
		zap.Int(logFieldIssueCountConstant, len(verdict.Issues)),
	)

	if !verdict.Clean {
		return errors.New(uncleanRepositoryMessageConstant)
	}
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (ScanOptions, error) {
	configuration := builder.resolveConfiguration().sanitize()
	sanitizer := builder.resolvePathSanitizer()

	listAllFlag, _ := command.Flags().GetBool(flagListAllNameConstant)
	ignoreTabsFlag, _ := command.Flags().GetBool(flagIgnoreTabsNameConstant)
	trailingFlag, _ := command.Flags().GetBool(flagTrailingNameConstant)
	windowsFlag, _ := command.Flags().GetBool(flagWindowsNameConstant)
	unixFlag, _ := command.Flags().GetBool(flagUnixNameConstant)
	executeFlag, _ := command.Flags().GetBool(flagExecuteNameConstant)

	extensionValues, _ := command.Flags().GetStringArray(flagExtensionsNameConstant)
	if len(extensionValues) == 0 {
		extensionValues = configuration.Extensions
	}

	skipValues, _ := command.Flags().GetStringArray(flagSkipNameConstant)
	if len(skipValues) == 0 {
		skipValues = configuration.Skip
	}

	lineEnding := ""
	switch {
	case windowsFlag:
		lineEnding = windowsLineEndingConstant
	case unixFlag:
		lineEnding = unixLineEndingConstant
	}

	allExtensions := len(extensionValues) == 1 && extensionValues[0] == allExtensionsSentinelConstant
	extensions := extensionValues
	if allExtensions {
		extensions = nil
	}
	if len(extensions) == 0 && !allExtensions {
		extensions = defaultSourceExtensions
	}

	options := ScanOptions{
		Root:          sanitizer.SanitizeOne(arguments[0]),
		Extensions:    extensions,
		AllExtensions: allExtensions,
		ExcludePaths:  sanitizer.Sanitize(skipValues),
		CheckTabs:     !ignoreTabsFlag,
		CheckTrailing: trailingFlag,
		LineEnding:    lineEnding,
		CheckExecute:  executeFlag,
		ListAll:       listAllFlag,
	}

	return options, nil
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
