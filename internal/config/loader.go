package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// DefaultFileNames are looked up, in order, by Find.
var DefaultFileNames = []string{"stepwise.yaml", "stepwise.yml", "stepwise.toml", "stepwise.ini"}

// Load reads the file at path on top of the defaults. The decoder is
// chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewConfigNotFoundError(path)
		}
		return nil, &UserError{Code: ErrCodeConfigNotFound, Message: "cannot read configuration", Context: path, Underlying: err}
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, NewConfigParseError(path, "YAML", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, NewConfigParseError(path, "TOML", err)
		}
	case ".ini":
		if err := decodeINI(data, cfg); err != nil {
			return nil, NewConfigParseError(path, "INI", err)
		}
	default:
		return nil, NewConfigFormatError(path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the first default config file in dir, or "" if none exists.
func Find(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadOrDefault loads path, or the first default file in dir when path is
// empty, or the defaults when there is no file at all.
func LoadOrDefault(path, dir string) (*Config, error) {
	if path == "" {
		path = Find(dir)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// decodeINI maps [retry], [ipc], [log] and [worker] sections onto cfg.
// Missing keys keep their current value.
func decodeINI(data []byte, cfg *Config) error {
	file, err := ini.Load(data)
	if err != nil {
		return err
	}

	retry := file.Section("retry")
	if retry.HasKey("count") {
		count, err := retry.Key("count").Int()
		if err != nil {
			return err
		}
		cfg.Retry.Count = count
	}
	if err := iniDuration(retry, "interval", &cfg.Retry.Interval); err != nil {
		return err
	}

	sec := file.Section("ipc")
	if err := iniDuration(sec, "poll_interval", &cfg.IPC.PollInterval); err != nil {
		return err
	}
	if err := iniDuration(sec, "read_timeout", &cfg.IPC.ReadTimeout); err != nil {
		return err
	}
	iniString(sec, "dir", &cfg.IPC.Dir)

	iniString(file.Section("log"), "level", &cfg.Log.Level)
	iniString(file.Section("log"), "format", &cfg.Log.Format)
	iniString(file.Section("worker"), "executable", &cfg.Worker.Executable)
	return nil
}

func iniDuration(sec *ini.Section, key string, dst *Duration) error {
	if !sec.HasKey(key) {
		return nil
	}
	return dst.UnmarshalText([]byte(sec.Key(key).String()))
}

func iniString(sec *ini.Section, key string, dst *string) {
	if sec.HasKey(key) {
		*dst = sec.Key(key).String()
	}
}
