// Package ioutils provides file system utilities.
//
// # File Operations
//
//	// Write a file atomically
//	err := ioutils.WriteFile(ctx, "/path/to/Album.m3u", []byte("content"))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Snapshots
//
// Checksum hashes a file's content, which lets callers verify that a test
// run left a file untouched:
//
//	sum, err := ioutils.Checksum("/music/Album/01 Song.mp3")
package ioutils
