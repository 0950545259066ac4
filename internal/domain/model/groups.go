package model

// Group is the set of entries sharing a matchup id in one week.
type Group struct {
	MatchupID int
	Entries   []MatchupEntry
}

// Pair is a scored head-to-head game.
type Pair struct {
	MatchupID int
	Home      MatchupEntry
	Away      MatchupEntry
}

// GroupMatchups groups entries by matchup id in order of first appearance.
// Entries without a matchup id (byes) are not grouped.
func GroupMatchups(entries []MatchupEntry) []Group {
	index := make(map[int]int)
	groups := make([]Group, 0, len(entries)/2)
	for _, e := range entries {
		if e.MatchupID == 0 {
			continue
		}
		i, ok := index[e.MatchupID]
		if !ok {
			i = len(groups)
			index[e.MatchupID] = i
			groups = append(groups, Group{MatchupID: e.MatchupID})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// Pairs returns the scorable games of a week and the groups that were not
// scorable. A group is scorable only with exactly two entries that both carry
// a roster id.
func Pairs(entries []MatchupEntry) ([]Pair, []Group) {
	groups := GroupMatchups(entries)
	pairs := make([]Pair, 0, len(groups))
	var malformed []Group
	for _, g := range groups {
		if len(g.Entries) != 2 || g.Entries[0].RosterID == 0 || g.Entries[1].RosterID == 0 {
			malformed = append(malformed, g)
			continue
		}
		pairs = append(pairs, Pair{MatchupID: g.MatchupID, Home: g.Entries[0], Away: g.Entries[1]})
	}
	return pairs, malformed
}
