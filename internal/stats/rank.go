// Package stats contains result presentation helpers.
package stats

// Rank is a title awarded for a finished session's speed.
type Rank struct {
	Title string
	Color string
}

var ranks = []struct {
	below int
	rank  Rank
}{
	{30, Rank{Title: "Keyboard Rookie", Color: "#8C8C8C"}},
	{60, Rank{Title: "Typist", Color: "#4FA3FF"}},
	{90, Rank{Title: "Net Runner", Color: "#B36BFF"}},
}

var topRank = Rank{Title: "Hacker Elite", Color: "#00F0FF"}

// RankFor returns the rank earned at the given net WPM.
func RankFor(wpm int) Rank {
	for _, r := range ranks {
		if wpm < r.below {
			return r.rank
		}
	}
	return topRank
}
