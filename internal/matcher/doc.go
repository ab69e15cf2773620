// Package matcher infers title, artists and track number from audio file names.
//
// # Cascade
//
// A stem is tried against an ordered list of anchored patterns. The first
// pattern that matches decides the result:
//
//  1. "<track> <artist> ft. <artist> - <title>"
//  2. "<track> <artist> - <title>"
//  3. "<track> <title>"
//  4. "<artist> ft. <artist> - <title>"
//  5. "<artist> - <title>"
//  6. "<title>"
//
// The multi-artist separator is "ft.", "feat." (any letter case), "," or
// "&". Artist captures are non-greedy, so the first " - " in a stem ends
// the artist segment and any later " - " belongs to the title:
//
//	matcher.Match("Artist - Title - Live").Title // "Title - Live"
//
// # Track numbers
//
// Track numbers are rendered as plain integers ("002" becomes "2") and are
// absent when no rule with a track group matched.
package matcher
