package config

import "github.com/nibzard/taskline/internal/statedir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	Files   []string // config files that were applied, lowest priority first
}

// Default values.
var DefaultTaskFile = statedir.TasksPath("")

const (
	DefaultLogDir     = "~/.taskline/logs"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultTranscript = true
)

// Config holds the full configuration for taskline.
type Config struct {
	// Paths
	TaskFile string `toml:"task_file"`
	LogDir   string `toml:"log_dir"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Hook run after every persisted change
	HookCommand string `toml:"hook_command"`

	// Write a JSONL transcript of each session under LogDir
	Transcript bool `toml:"transcript"`

	// Derived
	ProjectRoot string `toml:"-"`
}

// Fields lists the configurable keys in display order.
func Fields() []string {
	return []string{
		"task_file",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"hook_command",
		"transcript",
	}
}

// Value returns the display value of a configurable key.
func (c *Config) Value(field string) string {
	switch field {
	case "task_file":
		return c.TaskFile
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return formatBool(c.LogTimestamps)
	case "log_caller":
		return formatBool(c.LogCaller)
	case "hook_command":
		return c.HookCommand
	case "transcript":
		return formatBool(c.Transcript)
	}
	return ""
}

func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Transcript = DefaultTranscript
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
