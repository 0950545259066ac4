package alltime

import "sort"

// TeamScore is one roster's total in one week.
type TeamScore struct {
	Points   float64 `json:"points"`
	Season   string  `json:"season"`
	Week     int     `json:"week"`
	TeamName string  `json:"team_name"`
}

// PlayerScore is one player's points for one roster in one week.
type PlayerScore struct {
	Points     float64 `json:"points"`
	PlayerName string  `json:"player_name"`
	Season     string  `json:"season"`
	Week       int     `json:"week"`
	TeamName   string  `json:"team_name"`
}

// HighScoreTables holds the all-time leaders.
type HighScoreTables struct {
	Teams   []TeamScore   `json:"weekly_high_scores"`
	Players []PlayerScore `json:"player_high_scores"`
}

// HighScores keeps the limit best team and player scores. Equal scores keep
// input order. A limit of 0 or less keeps everything.
func HighScores(teams []TeamScore, players []PlayerScore, limit int) HighScoreTables {
	t := append([]TeamScore(nil), teams...)
	sort.SliceStable(t, func(i, j int) bool { return t[i].Points > t[j].Points })
	p := append([]PlayerScore(nil), players...)
	sort.SliceStable(p, func(i, j int) bool { return p[i].Points > p[j].Points })

	if limit > 0 {
		if len(t) > limit {
			t = t[:limit]
		}
		if len(p) > limit {
			p = p[:limit]
		}
	}
	if t == nil {
		t = []TeamScore{}
	}
	if p == nil {
		p = []PlayerScore{}
	}
	return HighScoreTables{Teams: t, Players: p}
}
