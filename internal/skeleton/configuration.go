package skeleton

import "strings"

const (
	authorConfigurationKeySuffixConstant    = ".author"
	outputConfigurationKeySuffixConstant    = ".output"
	recursiveConfigurationKeySuffixConstant = ".recursive"
	defaultAuthorNameConstant               = "unknown"
	defaultOutputFolderNameConstant         = "tests"
)

// CommandConfiguration captures persistent settings for the write-tests command.
type CommandConfiguration struct {
	Author    string `mapstructure:"author"`
	Output    string `mapstructure:"output"`
	Recursive bool   `mapstructure:"recursive"`
}

// DefaultCommandConfiguration returns baseline configuration values for the write-tests command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Author:    defaultAuthorNameConstant,
		Output:    defaultOutputFolderNameConstant,
		Recursive: false,
	}
}

// DefaultConfigurationValues exposes write-tests defaults for registration with the configuration loader.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	return map[string]any{
		configurationKey + authorConfigurationKeySuffixConstant:    defaultAuthorNameConstant,
		configurationKey + outputConfigurationKeySuffixConstant:    defaultOutputFolderNameConstant,
		configurationKey + recursiveConfigurationKeySuffixConstant: false,
	}
}

// sanitize applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Author = strings.TrimSpace(sanitized.Author)
	if len(sanitized.Author) == 0 {
		sanitized.Author = defaultAuthorNameConstant
	}
	sanitized.Output = strings.TrimSpace(sanitized.Output)
	if len(sanitized.Output) == 0 {
		sanitized.Output = defaultOutputFolderNameConstant
	}
	return sanitized
}
