// Package property lists the tag fields retagger normalizes and how the
// expected value of each is derived from a file path.
package property

import (
	"path/filepath"

	"github.com/handiism/retagger/internal/matcher"
	"github.com/handiism/retagger/internal/model"
)

// ID3v2 frame identifiers of the normalized fields.
const (
	FrameTitle  = "TIT2"
	FrameArtist = "TPE1"
	FrameAlbum  = "TALB"
	FrameTrack  = "TRCK"
)

// Descriptor ties a tag field to the value a file path implies for it.
type Descriptor struct {
	// ID is the ID3v2 frame identifier.
	ID string

	// Label is the human-readable field name used in reports.
	Label string

	// Expected derives the field value from the file path alone.
	Expected func(path string) model.Value
}

var descriptors = []Descriptor{
	{ID: FrameTitle, Label: "Title", Expected: expectedTitle},
	{ID: FrameArtist, Label: "Artist", Expected: expectedArtist},
	{ID: FrameAlbum, Label: "Album", Expected: expectedAlbum},
	{ID: FrameTrack, Label: "Track", Expected: expectedTrack},
}

// Set returns the descriptors in report order: Title, Artist, Album, Track.
func Set() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Lookup returns the descriptor for a frame id.
func Lookup(id string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

func expectedTitle(path string) model.Value {
	return model.Some(matcher.MatchFile(path).Title)
}

func expectedArtist(path string) model.Value {
	return model.Some(matcher.MatchFile(path).Artists)
}

func expectedTrack(path string) model.Value {
	return matcher.MatchFile(path).Track
}

// expectedAlbum is the name of the directory holding the file.
func expectedAlbum(path string) model.Value {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return model.Some(AlbumOf(abs))
}

// AlbumOf returns the base name of the directory containing path.
func AlbumOf(path string) string {
	return filepath.Base(filepath.Dir(path))
}
