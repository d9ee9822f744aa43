package enforce

import "strings"

const (
	extensionsConfigurationKeySuffixConstant = ".extensions"
	skipConfigurationKeySuffixConstant       = ".skip"
)

// CommandConfiguration captures persistent settings for the enforce command.
type CommandConfiguration struct {
	Extensions []string `mapstructure:"extensions"`
	Skip       []string `mapstructure:"skip"`
}

// DefaultCommandConfiguration returns baseline configuration values for the enforce command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Extensions: nil,
		Skip:       nil,
	}
}

// DefaultConfigurationValues exposes enforce defaults for registration with the configuration loader.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	return map[string]any{
		configurationKey + extensionsConfigurationKeySuffixConstant: []string{},
		configurationKey + skipConfigurationKeySuffixConstant:       []string{},
	}
}

// sanitize trims whitespace and drops empty configuration entries.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Extensions = sanitizeStringList(configuration.Extensions)
	sanitized.Skip = sanitizeStringList(configuration.Skip)
	return sanitized
}

func sanitizeStringList(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}
