package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears TASKLINE_* variables. It returns the working directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{
		"TASKLINE_FILE", "TASKLINE_LOG_DIR", "TASKLINE_LOG_LEVEL", "TASKLINE_LOG_FORMAT",
		"TASKLINE_LOG_TIMESTAMPS", "TASKLINE_LOG_CALLER", "TASKLINE_HOOK", "TASKLINE_TRANSCRIPT",
	} {
		t.Setenv(key, "")
	}
	wd := t.TempDir()
	t.Chdir(wd)
	// Resolve symlinks so comparisons with os.Getwd hold on macOS.
	if resolved, err := os.Getwd(); err == nil {
		wd = resolved
	}
	return wd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func load(t *testing.T, args ...string) *ConfigWithSources {
	t.Helper()
	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), args)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	return cws
}

func TestDefaults(t *testing.T) {
	wd := isolate(t)
	cws := load(t)
	cfg := cws.Config

	if want := filepath.Join(wd, ".taskline", "tasks.txt"); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
	if want := filepath.Join(os.Getenv("HOME"), ".taskline", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "text" {
		t.Errorf("logging: got %q/%q, want warn/text", cfg.LogLevel, cfg.LogFormat)
	}
	if !cfg.Transcript {
		t.Error("Transcript: expected true by default")
	}
	if cfg.ProjectRoot != wd {
		t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, wd)
	}
	for _, field := range Fields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if len(cws.Files) != 0 {
		t.Errorf("expected no config files, got %v", cws.Files)
	}
}

func TestPriorityOrder(t *testing.T) {
	wd := isolate(t)
	writeFile(t, filepath.Join(os.Getenv("HOME"), ".taskline", "taskline.toml"),
		"task_file = \"user.txt\"\nlog_level = \"info\"\nhook_command = \"user-hook\"\nlog_caller = true\n")
	writeFile(t, filepath.Join(wd, "taskline.toml"),
		"task_file = \"project.txt\"\nlog_level = \"debug\"\n")
	t.Setenv("TASKLINE_LOG_LEVEL", "error")
	t.Setenv("TASKLINE_TRANSCRIPT", "off")

	cws := load(t, "-file", "flag.txt")
	cfg := cws.Config

	if want := filepath.Join(wd, "flag.txt"); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want error", cfg.LogLevel)
	}
	if cfg.HookCommand != "user-hook" {
		t.Errorf("HookCommand: got %q, want user-hook", cfg.HookCommand)
	}
	if cfg.Transcript {
		t.Error("Transcript: expected env to disable it")
	}

	want := map[string]ConfigSource{
		"task_file":    SourceFlag,
		"log_level":    SourceEnv,
		"hook_command": SourceUserFile,
		"log_caller":   SourceUserFile,
		"transcript":   SourceEnv,
		"log_format":   SourceDefault,
	}
	for field, source := range want {
		if got := cws.Sources[field]; got != source {
			t.Errorf("source of %s: got %q, want %q", field, got, source)
		}
	}
	if len(cws.Files) != 2 {
		t.Errorf("expected user and project files, got %v", cws.Files)
	}
}

func TestProjectFileBeatsUserFile(t *testing.T) {
	wd := isolate(t)
	writeFile(t, filepath.Join(os.Getenv("HOME"), ".taskline", "taskline.toml"), "log_format = \"json\"\n")
	writeFile(t, filepath.Join(wd, ".taskline", "taskline.toml"), "log_format = \"logfmt\"\n")

	cws := load(t)
	if cws.Config.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt", cws.Config.LogFormat)
	}
	if cws.Sources["log_format"] != SourceProjFile {
		t.Errorf("source: got %q, want project file", cws.Sources["log_format"])
	}
}

func TestXDGUserConfig(t *testing.T) {
	isolate(t)
	if os.Getenv("XDG_CONFIG_HOME") == "" || osUserConfigDir() != os.Getenv("XDG_CONFIG_HOME") {
		t.Skip("XDG config dir not used on this platform")
	}
	writeFile(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "taskline", "taskline.toml"), "hook_command = \"xdg\"\n")

	cws := load(t)
	if cws.Config.HookCommand != "xdg" {
		t.Errorf("HookCommand: got %q, want xdg", cws.Config.HookCommand)
	}
}

func TestSchemaRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "colour = \"red\"\n", "colour"},
		{"wrong type", "transcript = 1\n", "transcript"},
		{"bad enum", "log_format = \"xml\"\n", "log_format"},
		{"empty task file", "task_file = \"\"\n", "task_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wd := isolate(t)
			writeFile(t, filepath.Join(wd, "taskline.toml"), tt.content)

			_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Errorf("expected a *SchemaError in %v", err)
			}
		})
	}
}

func TestInvalidTOML(t *testing.T) {
	wd := isolate(t)
	writeFile(t, filepath.Join(wd, "taskline.toml"), "task_file = \n")

	_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "project config file") {
		t.Errorf("expected project file in error, got %v", err)
	}
}

func TestEnvAndFlagValidation(t *testing.T) {
	isolate(t)
	t.Setenv("TASKLINE_LOG_LEVEL", "loud")
	if _, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil); err == nil {
		t.Error("expected error for invalid env log level")
	}

	t.Setenv("TASKLINE_LOG_LEVEL", "")
	_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-log-format", "yaml"})
	if err == nil {
		t.Error("expected error for invalid flag log format")
	}
}

func TestFlagsLeaveArgs(t *testing.T) {
	isolate(t)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-hook", "notify", "ls", "-sort"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HookCommand != "notify" {
		t.Errorf("HookCommand: got %q, want notify", cfg.HookCommand)
	}
	if got := strings.Join(fs.Args(), " "); got != "ls -sort" {
		t.Errorf("remaining args: got %q, want %q", got, "ls -sort")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TASKLINE_TEST_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/logs", filepath.Join(home, "logs")},
		{"$TASKLINE_TEST_DIR/logs", "/data/logs"},
		{"/abs/path", "/abs/path"},
		{"rel/~", "rel/~"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := expandPath(tt.in); got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandWindowsEnv(t *testing.T) {
	t.Setenv("TASKLINE_WIN", "C:\\data")
	tests := []struct {
		in   string
		want string
	}{
		{"%TASKLINE_WIN%\\logs", "C:\\data\\logs"},
		{"%TASKLINE_MISSING%\\x", "%TASKLINE_MISSING%\\x"},
		{"100%", "100%"},
		{"%%", "%%"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := expandWindowsEnv(tt.in); got != tt.want {
				t.Errorf("expandWindowsEnv(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBoolFromString(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", " on "} {
		if !boolFromString(s) {
			t.Errorf("expected %q to be true", s)
		}
	}
	for _, s := range []string{"0", "false", "no", "off", "maybe"} {
		if boolFromString(s) {
			t.Errorf("expected %q to be false", s)
		}
	}
}

func TestExampleConfigIsValid(t *testing.T) {
	wd := isolate(t)
	writeFile(t, filepath.Join(wd, "taskline.toml"), ExampleConfig())

	cws := load(t)
	if cws.Sources["task_file"] != SourceProjFile {
		t.Errorf("source of task_file: got %q, want project file", cws.Sources["task_file"])
	}
	if cws.Sources["hook_command"] != SourceDefault {
		t.Errorf("commented hook_command should stay default, got %q", cws.Sources["hook_command"])
	}
}

func TestValue(t *testing.T) {
	cfg := &Config{TaskFile: "t.txt", Transcript: true, LogCaller: false}
	if got := cfg.Value("task_file"); got != "t.txt" {
		t.Errorf("expected t.txt, got %q", got)
	}
	if got := cfg.Value("transcript"); got != "true" {
		t.Errorf("expected true, got %q", got)
	}
	if got := cfg.Value("log_caller"); got != "false" {
		t.Errorf("expected false, got %q", got)
	}
	if got := cfg.Value("nope"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
