package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Album groups the tracks found in one directory.
//
// The directory base name is the album title, which is the same value the
// Album tag property expects for every file inside it. Albums are only
// used for playlist generation; tags are always normalized per file.
//
// Example:
//
//	album := model.NewAlbum("/music/Greatest Hits", model.PlaylistFormatM3U)
//	// album.Title = "Greatest Hits"
//	// album.PlaylistPath = "/music/Greatest Hits/Greatest Hits.m3u"
type Album struct {
	// Title is the album title, taken from the directory name.
	Title string

	// Path is the album directory.
	Path string

	// Tracks contains the tracks in this directory, in scan order.
	Tracks []*Track

	// PlaylistPath is the computed local file path for the playlist file.
	PlaylistPath string
}

// NewAlbum creates an Album for dir with its playlist path computed for format.
func NewAlbum(dir string, format PlaylistFormat) *Album {
	dir = filepath.Clean(dir)
	album := &Album{
		Title: filepath.Base(dir),
		Path:  dir,
	}
	album.PlaylistPath = album.parsePlaylistPath(format)
	return album
}

// AddTrack appends a track to the album and links it back to the album.
func (a *Album) AddTrack(t *Track) {
	t.Album = a
	a.Tracks = append(a.Tracks, t)
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat converts a format name ("m3u", "pls", "wpl", "zpl") to a PlaylistFormat.
// Names are case-insensitive and may carry a leading dot.
func ParsePlaylistFormat(name string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "m3u", "":
		return PlaylistFormatM3U, nil
	case "pls":
		return PlaylistFormatPLS, nil
	case "wpl":
		return PlaylistFormatWPL, nil
	case "zpl":
		return PlaylistFormatZPL, nil
	default:
		return PlaylistFormatM3U, fmt.Errorf("unknown playlist format %q", name)
	}
}

// Extension returns the file extension for the playlist format, including the dot.
//
// Returns:
//   - ".m3u" for PlaylistFormatM3U
//   - ".pls" for PlaylistFormatPLS
//   - ".wpl" for PlaylistFormatWPL
//   - ".zpl" for PlaylistFormatZPL
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatM3U:
		return ".m3u"
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// String returns the format name without the dot.
func (pf PlaylistFormat) String() string {
	return strings.TrimPrefix(pf.Extension(), ".")
}

// parsePlaylistPath computes the full playlist file path.
func (a *Album) parsePlaylistPath(format PlaylistFormat) string {
	fileName := sanitizeFileName(a.Title)
	if fileName == "" {
		fileName = "playlist"
	}
	ext := format.Extension()
	filePath := filepath.Join(a.Path, fileName+ext)

	// Limit total path length for Windows compatibility
	if len(filePath) >= 260 {
		maxLen := 11 - len(ext)
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(a.Path, fileName[:maxLen]+ext)
		}
	}

	return filePath
}

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
