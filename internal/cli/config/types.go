// Package config loads CLI configuration from defaults, a YAML file,
// CONTEXT_VARIANTS_ environment variables and command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	LogLevel        string `koanf:"log_level"`
	LogFormat       string `koanf:"log_format"`
	Output          string `koanf:"output"`
	OptionalWrapper string `koanf:"optional_wrapper"`
	OutDir          string `koanf:"out_dir"`
	Jobs            int    `koanf:"jobs"`
}

// Output formats.
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
	OutputJSON  = "json"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Default configuration values.
const (
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = LogFormatConsole
	DefaultOutput          = OutputTable
	DefaultOptionalWrapper = "*%s"
	DefaultJobs            = 4
	EnvPrefix              = "CONTEXT_VARIANTS_"
)

// ConfigFileNames are looked up in the working directory when --config is not given.
var ConfigFileNames = []string{".context-variants.yaml", ".context-variants.yml"}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		Output:          DefaultOutput,
		OptionalWrapper: DefaultOptionalWrapper,
		Jobs:            DefaultJobs,
	}
}
