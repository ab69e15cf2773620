// Package config provides configuration management for retagger.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Overrides from RETAG_* environment variables
//   - Conversion to the playlist format used by other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Scans the current directory for .mp3 files
//	// Writes changes (no test run)
//	// No playlists
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
// Environment variables win over the file; command line flags win over both:
//
//	if err := settings.ApplyEnv(); err != nil {
//	    return err
//	}
//
// Supported variables: RETAG_ROOT, RETAG_EXTENSION, RETAG_DRY_RUN,
// RETAG_VERBOSE, RETAG_NO_COLOR, RETAG_LEGACY_CHARSET,
// RETAG_CREATE_PLAYLIST, RETAG_PLAYLIST_FORMAT, RETAG_M3U_EXTENDED.
//
// # Saving Settings
//
//	settings.CreatePlaylist = true
//	err := settings.Save("/path/to/config.json")
package config
