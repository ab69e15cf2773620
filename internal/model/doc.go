// Package model defines the core data structures used throughout retagger.
//
// # Value
//
// Value is the present-or-absent string held by a tag field. An absent
// field and a field holding the empty string are different values:
//
//	model.Some("").Equal(model.None()) // false
//	model.None().Equal(model.None())   // true
//
// # Album
//
// Album represents one directory of audio files, titled after the directory:
//
//	album := model.NewAlbum("/music/Greatest Hits", model.PlaylistFormatM3U)
//	fmt.Println(album.Title)        // Greatest Hits
//	fmt.Println(album.PlaylistPath) // Where the playlist is written
//
// # Track
//
// Track represents one file and the metadata inferred from its name:
//
//	track := model.NewTrack(path, model.Some("1"), "Alice/Bob", "Song")
//	album.AddTrack(track)
package model
