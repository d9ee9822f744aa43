package cleanup

const (
	recursiveConfigurationKeySuffixConstant = ".recursive"
	printConfigurationKeySuffixConstant     = ".print"
)

// CommandConfiguration captures persistent settings for the delete-pyc command.
type CommandConfiguration struct {
	Recursive bool `mapstructure:"recursive"`
	Print     bool `mapstructure:"print"`
}

// DefaultCommandConfiguration returns baseline configuration values for the delete-pyc command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Recursive: false,
		Print:     false,
	}
}

// DefaultConfigurationValues exposes delete-pyc defaults for registration with the configuration loader.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	return map[string]any{
		configurationKey + recursiveConfigurationKeySuffixConstant: false,
		configurationKey + printConfigurationKeySuffixConstant:     false,
	}
}

// sanitize exists for symmetry with the other command configurations.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	return configuration
}
