package matcher

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/handiism/retagger/internal/model"
)

// Result is the metadata inferred from a file name stem.
type Result struct {
	// Rule is the name of the rule that matched.
	Rule string

	// Title is the inferred title.
	Title string

	// Artists is the artist list joined with ArtistSeparator. Empty when
	// the rule has no artist groups.
	Artists string

	// Track is the track number rendered without leading zeros, absent
	// when the rule has no track group.
	Track model.Value
}

// Match infers metadata from a file name stem (a base name without extension).
//
// Match is total: the last rule of the cascade accepts every string.
//
// Example:
//
//	r := matcher.Match("5 A feat. B - Song")
//	// r.Track = Some("5"), r.Artists = "A/B", r.Title = "Song"
func Match(stem string) Result {
	for _, rule := range rules {
		m := rule.Pattern.FindStringSubmatch(stem)
		if m == nil {
			continue
		}
		return rule.extract(m)
	}
	// Unreachable while the last rule is a catch-all.
	return Result{Rule: "none", Title: stem}
}

// MatchFile infers metadata from the base name of path with its extension removed.
func MatchFile(path string) Result {
	return Match(Stem(path))
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (r Rule) extract(m []string) Result {
	res := Result{
		Rule:  r.Name,
		Title: m[r.Title],
	}

	if len(r.Artists) > 0 {
		artists := make([]string, 0, len(r.Artists))
		for _, idx := range r.Artists {
			artists = append(artists, m[idx])
		}
		res.Artists = strings.Join(artists, ArtistSeparator)
	}

	if r.Track > 0 {
		res.Track = model.Some(normalizeTrack(m[r.Track]))
	}

	return res
}

// normalizeTrack renders a run of decimal digits as a base-10 integer,
// dropping leading zeros.
func normalizeTrack(digits string) string {
	if n, err := strconv.Atoi(digits); err == nil {
		return strconv.Itoa(n)
	}
	// Too large for int; strip zeros textually.
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
