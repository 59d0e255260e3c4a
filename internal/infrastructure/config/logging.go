package config

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: trace, debug, info, warn, error
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=trace debug info warn error"`

	// Log format: json, text
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=json text"`

	// Output destination: stdout, stderr, file
	Output string `mapstructure:"output" yaml:"output" validate:"required,oneof=stdout stderr file"`

	// File path (required if output is "file")
	FilePath string `mapstructure:"file_path" yaml:"file_path" validate:"required_if=Output file"`

	// Include caller information (file:line)
	IncludeCaller bool `mapstructure:"include_caller" yaml:"include_caller"`
}
