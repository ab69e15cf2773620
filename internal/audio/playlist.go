package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/retagger/internal/model"
)

// PlaylistCreator generates playlist files in various formats.
//
// PlaylistCreator takes an album directory and generates a playlist
// containing all its tracks, titled with the metadata inferred from the
// file names. The output is a string that can be written to a file.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
//
// Example:
//
//	// Create M3U playlist with extended info
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(album)
//	os.WriteFile(album.PlaylistPath, []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Alice/Bob - Song
//	// 01 Alice ft. Bob - Song.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines with title info
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the playlist format the creator generates.
func (p *PlaylistCreator) Format() model.PlaylistFormat {
	return p.format
}

// CreatePlaylist generates playlist content for an album.
//
// Returns the playlist as a string, ready to be written to a file.
// Track paths in the playlist are relative (just the filename),
// since the playlist file lives in the album directory.
func (p *PlaylistCreator) CreatePlaylist(album *model.Album) string {
	switch p.format {
	case model.PlaylistFormatM3U:
		return p.createM3U(album)
	case model.PlaylistFormatPLS:
		return p.createPLS(album)
	case model.PlaylistFormatWPL:
		return p.createWPL(album)
	case model.PlaylistFormatZPL:
		return p.createZPL(album)
	default:
		return p.createM3U(album)
	}
}

// createM3U generates an M3U playlist.
//
// Standard M3U format:
//
//	filename1.mp3
//	filename2.mp3
//
// Extended M3U format (when extended=true). The duration is unknown and
// written as -1:
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	filename1.mp3
func (p *PlaylistCreator) createM3U(album *model.Album) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range album.Tracks {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", track.DisplayName()))
		}
		sb.WriteString(track.FileName() + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Artist - Song Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(album *model.Album) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range album.Tracks {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, track.FileName()))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, track.DisplayName()))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(album.Tracks)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(album *model.Album) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(album.Title)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range album.Tracks {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(track.FileName())))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but carries album and track metadata attributes.
func (p *PlaylistCreator) createZPL(album *model.Album) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(album.Title)))
	sb.WriteString("    <meta name=\"Generator\" content=\"retagger\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(album.Tracks)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range album.Tracks {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\"/>\n",
			escapeXML(track.FileName()),
			escapeXML(album.Title),
			escapeXML(track.Title),
			escapeXML(track.Artist)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
