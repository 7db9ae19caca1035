package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Shell.Mode != ModeAuto {
		t.Errorf("default mode = %q, want %q", cfg.Shell.Mode, ModeAuto)
	}
	if cfg.Shell.Prompt != "Enter a command: " {
		t.Errorf("default prompt = %q", cfg.Shell.Prompt)
	}
	if cfg.Shell.Greeting != "Welcome to the assistant bot!" {
		t.Errorf("default greeting = %q", cfg.Shell.Greeting)
	}
	if !cfg.Color.Enabled {
		t.Error("colors should be enabled by default")
	}
	if cfg.Log.File != "" {
		t.Errorf("default log file = %q, want empty", cfg.Log.File)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadLayered_SingleValidFile(t *testing.T) {
	path := writeConfig(t, `
shell:
  mode: plain
  prompt: "> "
color:
  enabled: false
  error: "#ff0000"
log:
  file: /tmp/assistant.log
  level: debug
`)

	cfg, err := LoadLayered(path)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	if cfg.Shell.Mode != ModePlain {
		t.Errorf("mode = %q, want %q", cfg.Shell.Mode, ModePlain)
	}
	if cfg.Shell.Prompt != "> " {
		t.Errorf("prompt = %q, want %q", cfg.Shell.Prompt, "> ")
	}
	if cfg.Color.Enabled {
		t.Error("colors should be disabled")
	}
	if cfg.Color.Error != "#ff0000" {
		t.Errorf("error color = %q, want %q", cfg.Color.Error, "#ff0000")
	}
	// Unset fields should retain defaults.
	if cfg.Color.Success != "10" {
		t.Errorf("success color = %q, want default %q", cfg.Color.Success, "10")
	}
	if cfg.Shell.Greeting != "Welcome to the assistant bot!" {
		t.Errorf("greeting = %q, want default", cfg.Shell.Greeting)
	}
	if cfg.Log.File != "/tmp/assistant.log" || cfg.Log.Level != "debug" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadLayered_SingleMissingFile(t *testing.T) {
	cfg, err := LoadLayered("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("LoadLayered() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("LoadLayered(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_SingleInvalidYAML(t *testing.T) {
	path := writeConfig(t, "{{invalid yaml")

	if _, err := LoadLayered(path); err == nil {
		t.Fatal("LoadLayered(invalid YAML) should return error")
	}
}

func TestLoadLayered_SingleUnknownField(t *testing.T) {
	path := writeConfig(t, `
shell:
  promt: "> "
`)

	if _, err := LoadLayered(path); err == nil {
		t.Fatal("LoadLayered() should return error for unknown field 'promt'")
	}
}

func TestLoadLayered_SingleCommentOnlyAndEmptyFiles(t *testing.T) {
	for name, body := range map[string]string{
		"comment-only": "# just a comment\n",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadLayered(writeConfig(t, body))
			if err != nil {
				t.Fatalf("LoadLayered(%s) error = %v", name, err)
			}
			if want := DefaultConfig(); *cfg != want {
				t.Errorf("LoadLayered(%s) = %+v, want defaults %+v", name, *cfg, want)
			}
		})
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Setup: user config sets prompt and mode, project config overrides mode.
	userCfg := writeConfig(t, `
shell:
  mode: tui
  prompt: "user> "
`)
	projectCfg := writeConfig(t, `
shell:
  mode: plain
`)

	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	// Prompt from user config (project doesn't set it).
	if cfg.Shell.Prompt != "user> " {
		t.Errorf("prompt = %q, want %q", cfg.Shell.Prompt, "user> ")
	}
	// Mode from project config (overrides user).
	if cfg.Shell.Mode != ModePlain {
		t.Errorf("mode = %q, want %q", cfg.Shell.Mode, ModePlain)
	}
	// Level retains default when neither layer sets it.
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want default %q", cfg.Log.Level, "info")
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_BadLayerFails(t *testing.T) {
	good := writeConfig(t, "shell:\n  mode: plain\n")
	bad := writeConfig(t, "{{nope")

	if _, err := LoadLayered(good, bad); err == nil {
		t.Fatal("LoadLayered() should fail when any layer is invalid")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "ASSISTANT_MODE overrides mode",
			envs: map[string]string{"ASSISTANT_MODE": "plain"},
			check: func(t *testing.T, c Config) {
				if c.Shell.Mode != ModePlain {
					t.Errorf("mode = %q, want %q", c.Shell.Mode, ModePlain)
				}
			},
		},
		{
			name: "ASSISTANT_PROMPT may be set to empty",
			envs: map[string]string{"ASSISTANT_PROMPT": ""},
			check: func(t *testing.T, c Config) {
				if c.Shell.Prompt != "" {
					t.Errorf("prompt = %q, want empty", c.Shell.Prompt)
				}
			},
		},
		{
			name: "ASSISTANT_COLOR disables colors",
			envs: map[string]string{"ASSISTANT_COLOR": "false"},
			check: func(t *testing.T, c Config) {
				if c.Color.Enabled {
					t.Error("colors should be disabled")
				}
			},
		},
		{
			name: "ASSISTANT_LOG_FILE and ASSISTANT_LOG_LEVEL override log",
			envs: map[string]string{"ASSISTANT_LOG_FILE": "/tmp/a.log", "ASSISTANT_LOG_LEVEL": "debug"},
			check: func(t *testing.T, c Config) {
				if c.Log.File != "/tmp/a.log" || c.Log.Level != "debug" {
					t.Errorf("log = %+v", c.Log)
				}
			},
		},
		{
			name: "unset variables keep values",
			envs: map[string]string{},
			check: func(t *testing.T, c Config) {
				if c != DefaultConfig() {
					t.Errorf("config = %+v, want defaults", c)
				}
			},
		},
		{
			name:    "invalid ASSISTANT_COLOR returns error",
			envs:    map[string]string{"ASSISTANT_COLOR": "sometimes"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "empty prompt is allowed",
			modify: func(c *Config) { c.Shell.Prompt = "" },
		},
		{
			name:    "unknown mode",
			modify:  func(c *Config) { c.Shell.Mode = "fancy" },
			wantErr: true,
		},
		{
			name:    "empty mode",
			modify:  func(c *Config) { c.Shell.Mode = "" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "empty success color",
			modify:  func(c *Config) { c.Color.Success = "" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
