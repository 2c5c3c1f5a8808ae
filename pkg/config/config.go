package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "heron.yaml"

// EnvPrefix prefixes every environment override (HERON_REFERENCE_ROOT, ...).
const EnvPrefix = "HERON"

// SkipEnv disables reference generation when set to any value.
const SkipEnv = "SKIP_REFERENCE"

// Config represents heron.yaml configuration
type Config struct {
	Reference ReferenceConfig `yaml:"reference" mapstructure:"reference"`
	Packages  []PackageConfig `yaml:"packages" mapstructure:"packages"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`

	// BaseDir is the directory relative paths are resolved against:
	// the config file's directory, or "." without a file.
	BaseDir string `yaml:"-" mapstructure:"-"`
}

// ReferenceConfig controls page generation
type ReferenceConfig struct {
	Root        string `yaml:"root" mapstructure:"root"`
	Output      string `yaml:"output" mapstructure:"output"`
	Skip        bool   `yaml:"skip" mapstructure:"skip"`
	MemberPages bool   `yaml:"member_pages" mapstructure:"member_pages"`
}

// PackageConfig describes one documented package
type PackageConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	// Dir holds the package's doc-node JSON files.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// Include are glob patterns, relative to Dir, selecting the files to load.
	Include []string `yaml:"include,omitempty" mapstructure:"include"`
	// Categories is an optional YAML or JSON file mapping label to description.
	Categories string `yaml:"categories,omitempty" mapstructure:"categories"`
}

// ServerConfig holds dev server settings
type ServerConfig struct {
	Port  int  `yaml:"port" mapstructure:"port"`
	Watch bool `yaml:"watch" mapstructure:"watch"`
}

// LoggingConfig selects log verbosity and output format
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Reference: ReferenceConfig{
			Root:   "/api",
			Output: "./site",
		},
		Server: ServerConfig{
			Port: 6060,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "pretty",
		},
		BaseDir: ".",
	}
}

// DefaultInclude is used for packages that list no include patterns.
var DefaultInclude = []string{"**.json"}

// Load reads configuration. Values come from defaults, then the file at path
// (or ./heron.yaml when path is empty), then HERON_* environment variables.
// A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = FileName
	}

	baseDir := "."
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		baseDir = filepath.Dir(path)
	case errors.Is(err, os.ErrNotExist):
		// defaults and environment only
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.BaseDir = baseDir

	// SKIP_REFERENCE disables generation whenever it is present, whatever its value.
	if _, ok := os.LookupEnv(SkipEnv); ok {
		cfg.Reference.Skip = true
	}

	for i := range cfg.Packages {
		if len(cfg.Packages[i].Include) == 0 {
			cfg.Packages[i].Include = append([]string(nil), DefaultInclude...)
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("reference.root", d.Reference.Root)
	v.SetDefault("reference.output", d.Reference.Output)
	v.SetDefault("reference.skip", d.Reference.Skip)
	v.SetDefault("reference.member_pages", d.Reference.MemberPages)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.watch", d.Server.Watch)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Resolve returns p joined to BaseDir unless it is absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	base := c.BaseDir
	if base == "" {
		base = "."
	}
	return filepath.Join(base, p)
}

// Package returns the package named name.
func (c *Config) Package(name string) (PackageConfig, bool) {
	for _, p := range c.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return PackageConfig{}, false
}

// SaveConfig writes configuration to a YAML file
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
