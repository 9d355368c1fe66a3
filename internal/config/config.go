// Package config loads the agenda commands' settings from environment
// variables with defaults, and validates them before any work starts.
package config

// Config holds all command configuration.
type Config struct {
	Store   StoreConfig
	Reader  ReaderConfig
	Logging LoggingConfig
}

// StoreConfig holds the SQLite store settings.
type StoreConfig struct {
	// Path is the store file shared by every table handle. Defaults to
	// agendasql.DefaultPath.
	Path string `env:"AGENDA_DB_PATH" envAlt:"DB_PATH"`
}

// ReaderConfig holds spreadsheet layout settings.
type ReaderConfig struct {
	// SkipRows is the number of preamble rows above the header row.
	SkipRows int `env:"AGENDA_SKIP_ROWS" default:"14"`

	// Sheet is the index of the worksheet holding the agenda.
	Sheet int `env:"AGENDA_SHEET" default:"0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is text or json.
	Format string `env:"LOG_FORMAT" default:"text"`
}
