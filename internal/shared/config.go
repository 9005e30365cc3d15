package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvPrefix prefixes every environment override, e.g. MIXDECK_DATABASE_PATH.
const EnvPrefix = "MIXDECK_"

// Config represents the application configuration loaded from a TOML or YAML file.
type Config struct {
	Database DatabaseConfig `toml:"database" yaml:"database"`
	Mopidy   MopidyConfig   `toml:"mopidy" yaml:"mopidy"`
	Library  LibraryConfig  `toml:"library" yaml:"library"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" yaml:"path"`
	MaxOpenConns int    `toml:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns" yaml:"max_idle_conns"`
}

// MopidyConfig locates the local streaming daemon.
type MopidyConfig struct {
	Host string `toml:"host" yaml:"host"`
	Port int    `toml:"port" yaml:"port"`
}

// LibraryConfig holds the default library view options.
type LibraryConfig struct {
	Source  string   `toml:"source" yaml:"source"`
	Sort    string   `toml:"sort" yaml:"sort"`
	Reverse bool     `toml:"reverse" yaml:"reverse"`
	Limit   int      `toml:"limit" yaml:"limit"`
	SortMap []string `toml:"sort_map" yaml:"sort_map"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// LoadConfig reads a configuration file, layering it over [DefaultConfig].
//
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = toml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads dotenv files into the process environment. Missing files are skipped.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from MIXDECK_* environment variables.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"DATABASE_PATH":  &c.Database.Path,
		"MOPIDY_HOST":    &c.Mopidy.Host,
		"LIBRARY_SOURCE": &c.Library.Source,
		"LIBRARY_SORT":   &c.Library.Sort,
		"LOG_LEVEL":      &c.Log.Level,
	}
	for name, target := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*target = v
		}
	}

	ints := map[string]*int{
		"MOPIDY_PORT":   &c.Mopidy.Port,
		"LIBRARY_LIMIT": &c.Library.Limit,
	}
	for name, target := range ints {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, name, v)
		}
		*target = n
	}

	if v, ok := os.LookupEnv(EnvPrefix + "LIBRARY_REVERSE"); ok {
		reverse, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sLIBRARY_REVERSE=%q", ErrInvalidConfig, EnvPrefix, v)
		}
		c.Library.Reverse = reverse
	}

	return nil
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
