package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"

	"github.com/grovetools/gate/pkg/paths"
)

// SettingsFileName is the name of the tool-level settings file under the
// gate config directory. It configures gate itself, not the hook list.
const SettingsFileName = "gate.toml"

// Settings holds tool-level settings.
type Settings struct {
	// CacheDir overrides where pinned hook repositories are cloned.
	CacheDir string `toml:"cache_dir,omitempty" mapstructure:"cache_dir"`

	// Color controls styled output: "auto" (default), "always", "never".
	Color string `toml:"color,omitempty" mapstructure:"color"`

	// raw keeps the full decoded document so tool sections (e.g. logging)
	// can be unmarshaled on demand.
	raw map[string]interface{}
}

// SettingsPath returns the location of the settings file.
func SettingsPath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, SettingsFileName)
}

// LoadSettings reads the settings file. A missing file yields defaults.
func LoadSettings() (*Settings, error) {
	settings := &Settings{Color: "auto"}

	path := SettingsPath()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	return parseSettings(data)
}

func parseSettings(data []byte) (*Settings, error) {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}

	settings := &Settings{Color: "auto", raw: raw}
	if err := mapstructure.Decode(raw, settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if settings.Color == "" {
		settings.Color = "auto"
	}

	return settings, nil
}

// UnmarshalExtension decodes a named section of the settings document into
// out. Sections absent from the file leave out untouched.
func (s *Settings) UnmarshalExtension(key string, out interface{}) error {
	if s.raw == nil {
		return nil
	}
	section, ok := s.raw[key]
	if !ok {
		return nil
	}
	if err := mapstructure.Decode(section, out); err != nil {
		return fmt.Errorf("decode '%s' settings: %w", key, err)
	}
	return nil
}

// ResolveCacheDir returns where hook repositories are cached.
func (s *Settings) ResolveCacheDir() string {
	if s.CacheDir != "" {
		return s.CacheDir
	}
	dir := paths.CacheDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "repos")
}
