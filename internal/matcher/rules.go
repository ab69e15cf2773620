package matcher

import "regexp"

// Rule maps the capture groups of an anchored pattern to metadata roles.
// Rules are evaluated in order by [Match]; first match wins.
type Rule struct {
	// Name identifies the rule in logs and tests.
	Name string

	// Pattern is anchored at both ends.
	Pattern *regexp.Regexp

	// Track is the group holding the track number, or 0 for none.
	Track int

	// Artists are the groups holding artist names, in output order.
	Artists []int

	// Title is the group holding the title.
	Title int
}

// ArtistSeparator joins multiple artists in the inferred Artist value.
const ArtistSeparator = "/"

const (
	// trackPrefix is a leading number followed by exactly one space. Any
	// further characters belong to the next group.
	trackPrefix = `(\d+) `

	// multiArtist splits two artists on "ft.", "feat." (either case per
	// letter), "," or "&", and the title on the first " - " after them.
	multiArtist = `(.*?)\s*(?:[fF](?:[eE][aA])?[tT]\.|[,&])\s*(.*?) - (.*)`

	singleArtist = `(.*?) - (.*)`

	titleOnly = `(.*)`
)

// anchored matches the whole stem. (?s) lets "." cross newlines, which
// Linux file names may contain, so the title rule still accepts every stem.
func anchored(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)^` + expr + `$`)
}

// rules is the cascade. Track-numbered forms come before the bare forms,
// and multi-artist forms before single-artist ones. The last rule matches
// any input.
var rules = []Rule{
	{
		Name:    "track-multi-artist",
		Pattern: anchored(trackPrefix + multiArtist),
		Track:   1,
		Artists: []int{2, 3},
		Title:   4,
	},
	{
		Name:    "track-artist",
		Pattern: anchored(trackPrefix + singleArtist),
		Track:   1,
		Artists: []int{2},
		Title:   3,
	},
	{
		Name:    "track-title",
		Pattern: anchored(trackPrefix + titleOnly),
		Track:   1,
		Title:   2,
	},
	{
		Name:    "multi-artist",
		Pattern: anchored(multiArtist),
		Artists: []int{1, 2},
		Title:   3,
	},
	{
		Name:    "artist",
		Pattern: anchored(singleArtist),
		Artists: []int{1},
		Title:   2,
	},
	{
		Name:    "title",
		Pattern: anchored(titleOnly),
		Title:   1,
	},
}

// Rules returns a copy of the rule cascade in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
