package config

// Config holds the overall server configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	HTTP    HTTPConfig    `yaml:"http"`
	Reports ReportsConfig `yaml:"reports"`
	Server  ServerConfig  `yaml:"server"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HTTPConfig holds transport-level settings for outbound requests.
type HTTPConfig struct {
	TimeoutSeconds int  `yaml:"timeout_seconds"`
	TlsSkipVerify  bool `yaml:"tls_skip_verify,omitempty"`
}

// ReportsConfig holds settings for rendered session reports.
type ReportsConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// ServerConfig identifies this server to the host dispatcher.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}
