package browse

import "strings"

const (
	defaultRemoteNameConstant          = "origin"
	remoteConfigurationSuffixConstant  = ".remote"
	printConfigurationSuffixConstant   = ".print"
	emptyConfiguredRemoteValueConstant = ""
)

// CommandConfiguration stores persisted settings for the browse command.
type CommandConfiguration struct {
	// Remote overrides the branch-configured remote; empty selects it automatically.
	Remote string `mapstructure:"remote" yaml:"remote"`
	// Print suppresses the browser launch and only writes the URL to standard output.
	Print bool `mapstructure:"print" yaml:"print"`
}

// DefaultCommandConfiguration returns the baseline browse settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Remote: emptyConfiguredRemoteValueConstant, Print: false}
}

// Sanitize normalizes configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	configuration.Remote = strings.TrimSpace(configuration.Remote)
	return configuration
}

// DefaultConfigurationValues exposes configuration defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationPrefix + remoteConfigurationSuffixConstant: defaults.Remote,
		configurationPrefix + printConfigurationSuffixConstant:  defaults.Print,
	}
}
