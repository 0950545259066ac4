package matchup

// Awards are the single-record weekly superlatives. A nil award had no
// qualifying record. Ties keep the first record seen.
type Awards struct {
	MostEfficient     *Efficiency `json:"most_efficient_manager"`
	LeastEfficient    *Efficiency `json:"least_efficient_manager"`
	HighestInLoss     *Result     `json:"highest_points_in_loss"`
	LowestInWin       *Result     `json:"lowest_points_in_win"`
	LargestWinMargin  *Result     `json:"largest_winning_margin"`
	SmallestWinMargin *Result     `json:"smallest_winning_margin"`
}

func computeAwards(results []Result, eff []Efficiency) Awards {
	var a Awards
	for i := range eff {
		e := eff[i]
		if a.MostEfficient == nil || e.LeftOnBench() < a.MostEfficient.LeftOnBench() {
			a.MostEfficient = &e
		}
		if a.LeastEfficient == nil || e.LeftOnBench() > a.LeastEfficient.LeftOnBench() {
			a.LeastEfficient = &e
		}
	}

	for i := range results {
		r := results[i]
		if !r.Won {
			if a.HighestInLoss == nil || r.Points > a.HighestInLoss.Points {
				a.HighestInLoss = &r
			}
			continue
		}
		if a.LowestInWin == nil || r.Points < a.LowestInWin.Points {
			a.LowestInWin = &r
		}
		if a.LargestWinMargin == nil || r.Margin > a.LargestWinMargin.Margin {
			a.LargestWinMargin = &r
		}
		if a.SmallestWinMargin == nil || r.Margin < a.SmallestWinMargin.Margin {
			a.SmallestWinMargin = &r
		}
	}
	return a
}
