package alltime

import "sort"

// H2H is one manager's record against one opponent.
type H2H struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Games is the number of meetings.
func (h H2H) Games() int { return h.Wins + h.Losses }

// headToHead credits exactly one side of each game from each manager's log.
// A tie counts as a loss for both.
func headToHead(acc *accumulator, ranked map[string]string) map[string]map[string]H2H {
	out := make(map[string]map[string]H2H, len(ranked))
	for _, owner := range acc.order {
		if _, ok := ranked[owner]; !ok {
			continue
		}
		row := make(map[string]H2H)
		for _, g := range acc.ledgers[owner].games {
			rec := row[g.Opponent]
			if g.Won {
				rec.Wins++
			} else {
				rec.Losses++
			}
			row[g.Opponent] = rec
		}
		out[owner] = row
	}
	return out
}

// Record returns a's record against b, zero when they never met.
func (r *Result) Record(a, b string) H2H {
	return r.HeadToHead[a][b]
}

func displayOrder(display map[string]string) []string {
	ids := make([]string, 0, len(display))
	for id := range display {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if display[ids[i]] != display[ids[j]] {
			return display[ids[i]] < display[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}
