package domain

// Config mirrors ~/.springprobe/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Defaults            CheckDefaults   `yaml:"defaults"`
	Logging             LoggingSettings `yaml:"logging"`
	History             HistorySettings `yaml:"history"`
}

// CheckDefaults supplies fallback values for flags left unset on the
// command line.
type CheckDefaults struct {
	BaseURL            string `yaml:"base_url"`
	Module             string `yaml:"module"`
	TimeoutSeconds     int    `yaml:"timeout"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	ExpectedStatus     int    `yaml:"expected_status"`
}

// LoggingSettings configures the console+file log sink.
type LoggingSettings struct {
	Level  string          `yaml:"level"`
	Format string          `yaml:"format"`
	File   LogFileSettings `yaml:"file"`
}

// LogFileSettings controls log file rotation.
type LogFileSettings struct {
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// HistorySettings controls check-history persistence.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
