package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKLINE_* environment variables.
// Empty variables are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(key, field string, target *string) {
		if v := os.Getenv(key); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(key, field string, target *bool) {
		if v := os.Getenv(key); v != "" {
			*target = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("TASKLINE_FILE", "task_file", &cfg.TaskFile)
	setString("TASKLINE_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("TASKLINE_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TASKLINE_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TASKLINE_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TASKLINE_LOG_CALLER", "log_caller", &cfg.LogCaller)
	setString("TASKLINE_HOOK", "hook_command", &cfg.HookCommand)
	setBool("TASKLINE_TRANSCRIPT", "transcript", &cfg.Transcript)
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
