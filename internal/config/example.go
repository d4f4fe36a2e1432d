package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskline configuration file
# Values can be overridden by TASKLINE_* environment variables or CLI flags

# Task file (relative to the working directory)
task_file = ".taskline/tasks.txt"

# Session transcripts (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.taskline/logs"

# Write a JSONL transcript of each session
transcript = true

# Diagnostics on stderr: debug, info, warn or error
log_level = "warn"

# text, json or logfmt
log_format = "text"

log_timestamps = false
log_caller = false

# Run after every change that is saved. Arguments: action, task file,
# task count, task.
# hook_command = "/path/to/hook.sh"
`
}
