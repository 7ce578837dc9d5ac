package mods

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"scratchc/common"

	"github.com/pelletier/go-toml"
)

// tomlConfigFile represents the tool configuration as it is encoded in TOML
type tomlConfigFile struct {
	Project *tomlProject `toml:"project"`
	Server  *tomlServer  `toml:"server"`
	Log     *tomlLog     `toml:"log"`
}

// tomlProject configures the translation output
type tomlProject struct {
	Name   string `toml:"name"`
	Output string `toml:"output,omitempty"`
}

// tomlServer configures the upload endpoint
type tomlServer struct {
	Addr string `toml:"addr,omitempty"`
}

// tomlLog configures diagnostics
type tomlLog struct {
	Level string `toml:"level,omitempty"`
}

// Config is the merged tool configuration
type Config struct {
	// Name is the project name; informational only
	Name string

	// OutputPath is the default archive path when the CLI passes none
	OutputPath string

	// ServerAddr is the bind address of the upload endpoint
	ServerAddr string

	// LogLevel is the log level name from the config file.  It is validated
	// on load but not applied: the CLI's --loglevel selector (default
	// verbose) sets the level the logger uses.
	LogLevel string
}

// defaultConfig returns the configuration used in the absence of a config
// file
func defaultConfig() *Config {
	return &Config{
		ServerAddr: ":8090",
		LogLevel:   "verbose",
	}
}

// LoadConfig loads and validates the optional configuration file from a
// directory.  A missing file yields the defaults; a malformed file is an
// error.
func LoadConfig(dir string) (*Config, error) {
	cfg := defaultConfig()

	f, err := os.Open(filepath.Join(dir, common.ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return nil, err
	}

	if tcf.Project != nil {
		cfg.Name = tcf.Project.Name
		cfg.OutputPath = tcf.Project.Output
	}

	if tcf.Server != nil && tcf.Server.Addr != "" {
		cfg.ServerAddr = tcf.Server.Addr
	}

	if tcf.Log != nil && tcf.Log.Level != "" {
		cfg.LogLevel = tcf.Log.Level
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig ensures the merged configuration is usable
func validateConfig(cfg *Config) error {
	switch cfg.LogLevel {
	case "silent", "error", "warning", "verbose":
	default:
		return fmt.Errorf("invalid log level `%s`", cfg.LogLevel)
	}

	return nil
}
