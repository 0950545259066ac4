package matchup_test

import (
	"testing"

	"github.com/okian/gridiron/internal/domain/matchup"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/position"
	. "github.com/smartystreets/goconvey/convey"
)

func weekFixture() ([]model.MatchupEntry, position.Eligibility, position.Template) {
	elig := position.Eligibility{
		"qb1":  position.NewSet("QB"),
		"rb1":  position.NewSet("RB"),
		"def1": position.NewSet("DEF"),
		"rb9":  position.NewSet("RB"),
		"qb2":  position.NewSet("QB"),
		"wr2":  position.NewSet("WR"),
		"wr3":  position.NewSet("WR"),
		"te3":  position.NewSet("TE"),
	}
	tmpl := position.NewTemplate([]string{"QB", "RB", "WR", "TE", "FLEX", "DEF", "BN"})
	entries := []model.MatchupEntry{
		{
			RosterID: 1, MatchupID: 7, Points: 105.5,
			Starters:      []string{"qb1", "rb1", "def1"},
			Players:       []string{"qb1", "rb1", "def1", "rb9"},
			PlayersPoints: map[string]float64{"qb1": 20, "rb1": 15, "def1": 0, "rb9": 18},
		},
		{
			RosterID: 2, MatchupID: 7, Points: 98.25,
			Starters:      []string{"qb2", "wr2"},
			Players:       []string{"qb2", "wr2", "wr3", "te3"},
			PlayersPoints: map[string]float64{"qb2": 25, "wr2": 10, "wr3": 5, "te3": 12},
		},
		{RosterID: 3, MatchupID: 8, Points: 90},
		{RosterID: 4, MatchupID: 8, Points: 90},
		{RosterID: 5, MatchupID: 0, Points: 70},
		{RosterID: 6, MatchupID: 9}, {RosterID: 7, MatchupID: 9}, {RosterID: 8, MatchupID: 9},
	}
	return entries, elig, tmpl
}

func TestAnalyzeWeekResults(t *testing.T) {
	Convey("Given a week with a decided game, a tie, a bye and a broken group", t, func() {
		entries, elig, tmpl := weekFixture()
		w := matchup.AnalyzeWeek(entries, elig, tmpl)

		Convey("Then the decided game records winner and margin on both sides", func() {
			a, ok := w.Result(1)
			So(ok, ShouldBeTrue)
			So(a.Won, ShouldBeTrue)
			So(a.Margin, ShouldEqual, 7.25)
			So(a.OpponentID, ShouldEqual, 2)

			b := w.ByRoster()[2]
			So(b.Won, ShouldBeFalse)
			So(b.Margin, ShouldEqual, -7.25)
			So(b.OpponentPoints, ShouldEqual, 105.5)
		})

		Convey("Then a tie is a non-win for both sides", func() {
			c, _ := w.Result(3)
			d, _ := w.Result(4)
			So(c.Won || d.Won, ShouldBeFalse)
			So(c.Margin, ShouldEqual, 0.0)
			So(c.Tied(), ShouldBeTrue)
		})

		Convey("Then byes and broken groups are not scored", func() {
			_, ok := w.Result(5)
			So(ok, ShouldBeFalse)
			So(len(w.Results), ShouldEqual, 4)
			So(len(w.Skipped), ShouldEqual, 1)
			So(w.Skipped[0].MatchupID, ShouldEqual, 9)
		})

		Convey("Then extremes come from scored teams only", func() {
			So(w.Highest.RosterID, ShouldEqual, 1)
			So(w.Lowest.RosterID, ShouldEqual, 3)
			So(w.Lowest.Points, ShouldEqual, 90.0)
		})
	})
}

func TestAnalyzeWeekLineups(t *testing.T) {
	Convey("Given the same week", t, func() {
		entries, elig, tmpl := weekFixture()
		w := matchup.AnalyzeWeek(entries, elig, tmpl)

		Convey("Then bench efficiency uses every rostered player", func() {
			e := w.Efficiency[0]
			So(e.RosterID, ShouldEqual, 1)
			So(e.Actual, ShouldEqual, 35.0)
			So(e.Optimal, ShouldEqual, 53.0)
			So(e.LeftOnBench(), ShouldEqual, 18.0)
			So(w.Efficiency[1].Optimal, ShouldEqual, 52.0)
		})

		Convey("Then the best lineup is built across teams", func() {
			qb, ok := w.BestLineup.Get("QB")
			So(ok, ShouldBeTrue)
			So(qb.PlayerID, ShouldEqual, "qb2")
			rb, _ := w.BestLineup.Get("RB")
			So(rb.PlayerID, ShouldEqual, "rb9")
		})

		Convey("Then the worst lineup only holds starters", func() {
			qb, _ := w.WorstStarted.Get("QB")
			So(qb.PlayerID, ShouldEqual, "qb1")
			So(w.WorstStarted.Players(), ShouldNotContain, "rb9")
			d, ok := w.WorstStarted.Get("DEF")
			So(ok, ShouldBeTrue)
			So(d.Points, ShouldEqual, 0.0)
		})

		Convey("Then bench standouts outscored a starter they could replace", func() {
			ids := w.BenchStandouts.Players()
			So(ids, ShouldContain, "rb9")
			So(ids, ShouldContain, "te3")
			So(ids, ShouldNotContain, "wr3")
		})
	})
}

func TestAwards(t *testing.T) {
	Convey("Given the analysed week", t, func() {
		entries, elig, tmpl := weekFixture()
		a := matchup.AnalyzeWeek(entries, elig, tmpl).Awards

		Convey("Then efficiency awards pick the first extreme seen", func() {
			So(a.MostEfficient.RosterID, ShouldEqual, 3)
			So(a.LeastEfficient.RosterID, ShouldEqual, 1)
		})

		Convey("Then result awards are drawn from wins and losses", func() {
			So(a.HighestInLoss.RosterID, ShouldEqual, 2)
			So(a.LowestInWin.RosterID, ShouldEqual, 1)
			So(a.LargestWinMargin.Margin, ShouldEqual, 7.25)
			So(a.SmallestWinMargin.RosterID, ShouldEqual, 1)
		})
	})

	Convey("Given a week without scored games", t, func() {
		a := matchup.AnalyzeWeek(nil, position.Eligibility{}, position.NewTemplate(position.DefaultSlots)).Awards
		So(a.HighestInLoss, ShouldBeNil)
		So(a.MostEfficient, ShouldBeNil)
	})
}
