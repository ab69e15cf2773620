package model

import (
	"path/filepath"
	"strconv"
)

// Track is a single audio file with the metadata inferred from its name.
//
// Track carries the normalized values that were written to (or, in a
// test run, would be written to) the file's tag:
//   - Number from the leading track number of the file name, if any
//   - Artist and Title from the rest of the file name
//   - Path of the file on disk
//
// Example:
//
//	track := model.NewTrack("/music/Hits/01 Alice ft. Bob - Song.mp3",
//	    model.Some("1"), "Alice/Bob", "Song")
type Track struct {
	// Album is a reference to the parent album, set by Album.AddTrack.
	Album *Album

	// Number is the track number as a decimal string, absent when the
	// file name does not start with one.
	Number Value

	// Artist is the slash-joined artist list. May be empty.
	Artist string

	// Title is the track title.
	Title string

	// Path is the file path.
	Path string
}

// NewTrack creates a Track for the file at path.
func NewTrack(path string, number Value, artist, title string) *Track {
	return &Track{
		Number: number,
		Artist: artist,
		Title:  title,
		Path:   path,
	}
}

// FileName returns the base name of the track file.
func (t *Track) FileName() string {
	return filepath.Base(t.Path)
}

// DisplayName returns "Artist - Title", or just the title when there is no artist.
func (t *Track) DisplayName() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}

// TrackNumber returns the track number as an int, or 0 if absent or malformed.
func (t *Track) TrackNumber() int {
	s, ok := t.Number.Text()
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
