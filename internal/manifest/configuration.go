package manifest

import "strings"

const (
	lineupConfigurationKeySuffixConstant  = ".lineup"
	wrapConfigurationKeySuffixConstant    = ".wrap"
	outfileConfigurationKeySuffixConstant = ".outfile"
	defaultWrapColumnConstant             = 100
)

// CommandConfiguration captures persistent settings for the make-init command.
type CommandConfiguration struct {
	Lineup  bool   `mapstructure:"lineup"`
	Wrap    int    `mapstructure:"wrap"`
	Outfile string `mapstructure:"outfile"`
}

// DefaultCommandConfiguration returns baseline configuration values for the make-init command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Lineup:  false,
		Wrap:    defaultWrapColumnConstant,
		Outfile: defaultOutputFileNameConstant,
	}
}

// DefaultConfigurationValues exposes make-init defaults for registration with the configuration loader.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	return map[string]any{
		configurationKey + lineupConfigurationKeySuffixConstant:  false,
		configurationKey + wrapConfigurationKeySuffixConstant:    defaultWrapColumnConstant,
		configurationKey + outfileConfigurationKeySuffixConstant: defaultOutputFileNameConstant,
	}
}

// sanitize applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	if sanitized.Wrap <= 0 {
		sanitized.Wrap = defaultWrapColumnConstant
	}
	sanitized.Outfile = strings.TrimSpace(sanitized.Outfile)
	if len(sanitized.Outfile) == 0 {
		sanitized.Outfile = defaultOutputFileNameConstant
	}
	return sanitized
}
