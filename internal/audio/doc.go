// Package audio reads and writes MP3 tags and generates playlists.
//
// # ID3 Tags
//
// Use a Store to open the ID3v2 tag of an MP3 file:
//
//	store, err := audio.NewStore(audio.StoreOptions{})
//	tag, err := store.Open(path)
//	defer tag.Close()
//
//	title := tag.Field("TIT2") // absent if the file has no title frame
//	tag.SetField("TIT2", "Song")
//	tag.DeleteField("TRCK")
//	err = tag.Save()
//
// Files without a tag open as an empty tag. Saving rewrites only the tag
// and keeps the audio frames intact.
//
// # Legacy Charsets
//
// Old taggers often stored Cyrillic or other code page text in frames
// marked as ISO-8859-1. Set StoreOptions.LegacyCharset to re-decode such
// frames:
//
//	store, err := audio.NewStore(audio.StoreOptions{LegacyCharset: "windows-1251"})
//
// # Playlist Generation
//
// Generate playlists for an album directory:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(album)
//	os.WriteFile(album.PlaylistPath, []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
