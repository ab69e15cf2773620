package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/retagger/internal/io"
	"github.com/handiism/retagger/internal/model"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes the environment variables read by ApplyEnv.
const EnvPrefix = "RETAG"

// Settings holds all configuration options.
type Settings struct {
	// Scan settings
	Root      string `json:"root" split_words:"true"`
	Extension string `json:"extension" split_words:"true"`

	// Run settings
	DryRun  bool `json:"dry_run" split_words:"true"`
	Verbose bool `json:"verbose" split_words:"true"`
	NoColor bool `json:"no_color" split_words:"true"`

	// Tag settings
	LegacyCharset string `json:"legacy_charset" split_words:"true"` // IANA name, e.g. windows-1251

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist" split_words:"true"`
	PlaylistFormat string `json:"playlist_format" split_words:"true"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended" envconfig:"M3U_EXTENDED"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Root:      ".",
		Extension: ".mp3",

		DryRun:  false,
		Verbose: false,
		NoColor: false,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// DefaultPath returns the settings file location in the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "retagger.json"
	}
	return filepath.Join(dir, "retagger", "config.json")
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: the defaults are returned instead.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings with RETAG_* environment variables.
// Variables that are not set leave the current value untouched.
//
// Example:
//
//	RETAG_DRY_RUN=true RETAG_LEGACY_CHARSET=windows-1251 retag
func (s *Settings) ApplyEnv() error {
	return envconfig.Process(EnvPrefix, s)
}

// Validate checks that the settings can be used for a run.
func (s *Settings) Validate() error {
	var errs []error
	if s.Root == "" {
		errs = append(errs, errors.New("root directory is empty"))
	}
	if !strings.HasPrefix(s.Extension, ".") || len(s.Extension) < 2 {
		errs = append(errs, fmt.Errorf("extension %q must start with a dot", s.Extension))
	}
	if _, err := model.ParsePlaylistFormat(s.PlaylistFormat); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ToPlaylistFormat converts the playlist format name to a model.PlaylistFormat.
// Unknown names fall back to M3U.
func (s *Settings) ToPlaylistFormat() model.PlaylistFormat {
	pf, err := model.ParsePlaylistFormat(s.PlaylistFormat)
	if err != nil {
		return model.PlaylistFormatM3U
	}
	return pf
}
