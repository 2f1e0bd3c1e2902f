package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/container-use/container-use-mcp/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the development host.
const (
	KeyUserSettings = "user_settings"
	KeyProbeTimeout = "probe_timeout"
	KeyDebug        = "debug"
)

// Dir returns the config directory ($XDG_CONFIG_HOME/container-use-mcp).
func Dir() string {
	return filepath.Join(xdg.ConfigHome, branding.CLIName())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() error {
	return LoadFile(FilePath())
}

// LoadFile is Load with an explicit config file. A missing file is not an
// error; one that cannot be parsed is, though environment values and
// defaults still apply.
func LoadFile(path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyProbeTimeout, 30*time.Second)

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsSet reports whether key has a value from the file, the environment, or a default.
func IsSet(key string) bool {
	return viper.IsSet(key)
}

// Duration returns a config value parsed as a duration.
func Duration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Bool returns a config value parsed as a boolean.
func Bool(key string) bool {
	return viper.GetBool(key)
}

// Keys lists the keys this tool reads, in display order.
func Keys() []string {
	return []string{KeyUserSettings, KeyProbeTimeout, KeyDebug}
}

// Validate reports whether value is usable for key. Values are checked with
// the same conversions viper applies when they are read back.
func Validate(key, value string) error {
	switch key {
	case KeyUserSettings:
		return nil
	case KeyProbeTimeout:
		d, err := cast.ToDurationE(value)
		if err != nil {
			return fmt.Errorf("%s must be a duration such as 30s: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", key, d)
		}
		return nil
	case KeyDebug:
		if _, err := cast.ToBoolE(value); err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		return nil
	}
	return fmt.Errorf("unknown key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
