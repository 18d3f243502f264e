package logging

// FormatConfig controls how log entries are rendered.
type FormatConfig struct {
	// Preset selects a formatter: "text" (default), "json", or "simple".
	Preset           string `yaml:"preset,omitempty" toml:"preset,omitempty" mapstructure:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp,omitempty" toml:"disable_timestamp,omitempty" mapstructure:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component,omitempty" toml:"disable_component,omitempty" mapstructure:"disable_component"`
}

// FileConfig controls the optional file sink.
type FileConfig struct {
	Enabled bool   `yaml:"enabled,omitempty" toml:"enabled,omitempty" mapstructure:"enabled"`
	Path    string `yaml:"path,omitempty" toml:"path,omitempty" mapstructure:"path"`
}

// Config is the logging section of the tool settings.
type Config struct {
	Level        string       `yaml:"level,omitempty" toml:"level,omitempty" mapstructure:"level"`
	ReportCaller bool         `yaml:"report_caller,omitempty" toml:"report_caller,omitempty" mapstructure:"report_caller"`
	Format       FormatConfig `yaml:"format,omitempty" toml:"format,omitempty" mapstructure:"format"`
	File         FileConfig   `yaml:"file,omitempty" toml:"file,omitempty" mapstructure:"file"`
}
