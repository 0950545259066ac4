package standings

import (
	"sort"

	"github.com/okian/gridiron/internal/domain/types"
)

// Row is a ranked, presentation-rounded standings line.
type Row struct {
	RosterID         int     `json:"roster_id"`
	TeamName         string  `json:"team_name"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Ties             int     `json:"ties"`
	WinPct           float64 `json:"win_pct"`
	PointsFor        float64 `json:"pf"`
	PointsAgainst    float64 `json:"pa"`
	TransactionCount int     `json:"transaction_count"`
}

// Rank orders a snapshot by win fraction then points for, both descending.
// The sort is stable over snapshot order and equal keys stay tied.
func Rank(s *Snapshot, teamName func(rosterID int) string) []Row {
	if s == nil {
		return []Row{}
	}
	records := s.Records()
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row{
			RosterID:         r.RosterID,
			TeamName:         teamName(r.RosterID),
			Wins:             r.Wins,
			Losses:           r.Losses,
			Ties:             r.Ties,
			WinPct:           types.RoundFraction(r.WinFraction()),
			PointsFor:        types.RoundPoints(r.PointsFor),
			PointsAgainst:    types.RoundPoints(r.PointsAgainst),
			TransactionCount: r.Transactions,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WinPct != rows[j].WinPct {
			return rows[i].WinPct > rows[j].WinPct
		}
		return rows[i].PointsFor > rows[j].PointsFor
	})
	return rows
}
