package mods

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"scratchc/common"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.ServerAddr != ":8090" {
		t.Errorf("server addr = %q, want :8090", cfg.ServerAddr)
	}
	if cfg.LogLevel != "verbose" {
		t.Errorf("log level = %q, want verbose", cfg.LogLevel)
	}
	if cfg.OutputPath != "" {
		t.Errorf("output path = %q, want empty", cfg.OutputPath)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[project]
name = "pong"
output = "pong.sb3"

[server]
addr = ":9000"

[log]
level = "warning"
`
	if err := ioutil.WriteFile(filepath.Join(dir, common.ConfigFileName), []byte(tomlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "pong" {
		t.Errorf("name = %q, want pong", cfg.Name)
	}
	if cfg.OutputPath != "pong.sb3" {
		t.Errorf("output = %q, want pong.sb3", cfg.OutputPath)
	}
	if cfg.ServerAddr != ":9000" {
		t.Errorf("server addr = %q, want :9000", cfg.ServerAddr)
	}
	if cfg.LogLevel != "warning" {
		t.Errorf("log level = %q, want warning", cfg.LogLevel)
	}
}

func TestLoadConfigInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, common.ConfigFileName), []byte("[log]\nlevel = \"shouty\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Error("invalid log level accepted")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, common.ConfigFileName), []byte("[project\nname ="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Error("malformed config accepted")
	}
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, common.ConfigFileName), []byte("[project]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ServerAddr != ":8090" || cfg.LogLevel != "verbose" {
		t.Error("partial config lost its defaults")
	}
}
