package export

import (
	"strconv"

	"github.com/okian/gridiron/internal/domain/alltime"
)

// Points formats a points value with two decimals.
func Points(x float64) string { return strconv.FormatFloat(x, 'f', 2, 64) }

// Percent formats a percentage with one decimal and a percent sign.
func Percent(x float64) string { return strconv.FormatFloat(x, 'f', 1, 64) + "%" }

// Mark formats a value with its provenance, "x.xx (2023 Wk4)", or "0.00 ()"
// when the mark refers to no game.
func Mark(m alltime.Mark) string {
	if !m.Set() {
		return "0.00 ()"
	}
	return Points(m.Value) + " (" + m.Season + " Wk" + strconv.Itoa(m.Week) + ")"
}

// Record formats wins and losses as "W-L".
func Record(wins, losses int) string {
	return strconv.Itoa(wins) + "-" + strconv.Itoa(losses)
}
