package config

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Dump writes the registry in Prometheus text format to stderr on exit
	Dump bool `mapstructure:"dump" yaml:"dump"`
}
