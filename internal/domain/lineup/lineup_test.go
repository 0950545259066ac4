package lineup_test

import (
	"testing"

	"github.com/okian/gridiron/internal/domain/lineup"
	"github.com/okian/gridiron/internal/domain/position"
	. "github.com/smartystreets/goconvey/convey"
)

func standardTemplate() position.Template {
	return position.NewTemplate(position.DefaultSlots)
}

func TestBuildMax(t *testing.T) {
	Convey("Given a full template and a short candidate pool", t, func() {
		elig := position.Eligibility{
			"qb1": position.NewSet("QB"),
			"rb1": position.NewSet("RB"),
			"rb2": position.NewSet("RB"),
			"rb3": position.NewSet("RB"),
			"wr1": position.NewSet("WR"),
			"te2": position.NewSet("TE"),
		}
		scores := []lineup.Score{
			{PlayerID: "qb1", Points: 20},
			{PlayerID: "rb1", Points: 15},
			{PlayerID: "rb2", Points: 10},
			{PlayerID: "rb3", Points: 8},
			{PlayerID: "wr1", Points: 12},
			{PlayerID: "te2", Points: 9},
		}

		l := lineup.Build(scores, standardTemplate(), elig, nil, lineup.Max)

		Convey("Then fixed slots fill before FLEX", func() {
			te, ok := l.Get("TE")
			So(ok, ShouldBeTrue)
			So(te.PlayerID, ShouldEqual, "te2")

			flex, ok := l.Get("FLEX1")
			So(ok, ShouldBeTrue)
			So(flex.PlayerID, ShouldEqual, "rb3")

			rb, _ := l.Get("RB1")
			So(rb.PlayerID, ShouldEqual, "rb1")
		})

		Convey("Then exhausted buckets leave slots empty", func() {
			_, ok := l.Get("WR2")
			So(ok, ShouldBeFalse)
			_, ok = l.Get("FLEX2")
			So(ok, ShouldBeFalse)
			So(len(l.Slots), ShouldEqual, 10)
			So(l.Filled(), ShouldEqual, 6)
		})

		Convey("Then the total is the sum of placed players", func() {
			So(l.Total(), ShouldEqual, 74.0)
		})
	})
}

func TestBuildNoReuse(t *testing.T) {
	Convey("Given multi-position players", t, func() {
		elig := position.Eligibility{
			"a": position.NewSet("RB", "WR"),
			"b": position.NewSet("WR", "TE"),
			"c": position.NewSet("TE", "RB"),
			"d": position.NewSet("DEF"),
		}
		scores := []lineup.Score{
			{PlayerID: "a", Points: 30},
			{PlayerID: "b", Points: 25},
			{PlayerID: "c", Points: 20},
			{PlayerID: "d", Points: 5},
			{PlayerID: "a", Points: 100},
		}

		for _, dir := range []lineup.Direction{lineup.Max, lineup.Min} {
			l := lineup.Build(scores, standardTemplate(), elig, nil, dir)

			Convey("Then no player fills two slots in "+dir.String()+" mode", func() {
				seen := map[string]bool{}
				for _, id := range l.Players() {
					So(seen[id], ShouldBeFalse)
					seen[id] = true
				}
			})
		}

		Convey("Then a repeated id keeps its first score", func() {
			l := lineup.Build(scores, standardTemplate(), elig, nil, lineup.Max)
			rb, _ := l.Get("RB1")
			So(rb.PlayerID, ShouldEqual, "a")
			So(rb.Points, ShouldEqual, 30.0)
		})
	})
}

func TestBuildZeroScores(t *testing.T) {
	Convey("Given a zero-point defense and a zero-point kicker", t, func() {
		elig := position.Eligibility{
			"def": position.NewSet("DEF"),
			"k":   position.NewSet("K"),
			"neg": position.NewSet("WR"),
		}
		scores := []lineup.Score{
			{PlayerID: "def", Points: 0},
			{PlayerID: "k", Points: 0},
			{PlayerID: "neg", Points: -1.5},
		}

		Convey("When building in MAX mode", func() {
			l := lineup.Build(scores, standardTemplate(), elig, nil, lineup.Max)

			Convey("Then the defense is kept and the others are dropped", func() {
				d, ok := l.Get("DEF")
				So(ok, ShouldBeTrue)
				So(d.PlayerID, ShouldEqual, "def")
				_, ok = l.Get("K")
				So(ok, ShouldBeFalse)
				_, ok = l.Get("WR1")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When building in MIN mode", func() {
			l := lineup.Build(scores, standardTemplate(), elig, nil, lineup.Min)

			Convey("Then zero and negative scorers are included", func() {
				k, ok := l.Get("K")
				So(ok, ShouldBeTrue)
				So(k.PlayerID, ShouldEqual, "k")
				wr, ok := l.Get("WR1")
				So(ok, ShouldBeTrue)
				So(wr.Points, ShouldEqual, -1.5)
				So(l.Total(), ShouldEqual, -1.5)
			})
		})
	})
}

func TestBuildOrderingAndExclusion(t *testing.T) {
	Convey("Given tied scores and an exclusion set", t, func() {
		elig := position.Eligibility{
			"w1": position.NewSet("WR"),
			"w2": position.NewSet("WR"),
			"w3": position.NewSet("WR"),
			"w4": position.NewSet("WR"),
			"x":  position.NewSet("WR"),
		}
		scores := []lineup.Score{
			{PlayerID: "w1", Points: 10},
			{PlayerID: "x", Points: 50},
			{PlayerID: "w2", Points: 10},
			{PlayerID: "w3", Points: 10},
			{PlayerID: "w4", Points: 2},
			{PlayerID: "ghost", Points: 99},
		}
		excluded := map[string]bool{"x": true}

		Convey("When maximising", func() {
			l := lineup.Build(scores, standardTemplate(), elig, excluded, lineup.Max)

			Convey("Then ties keep input order and excluded ids never appear", func() {
				So(l.Players(), ShouldResemble, []string{"w1", "w2", "w3", "w4"})
			})
		})

		Convey("When minimising", func() {
			l := lineup.Build(scores, standardTemplate(), elig, excluded, lineup.Min)

			Convey("Then the lowest scorers fill first", func() {
				wr, _ := l.Get("WR1")
				So(wr.PlayerID, ShouldEqual, "w4")
				wr, _ = l.Get("WR2")
				So(wr.PlayerID, ShouldEqual, "w1")
			})
		})
	})

	Convey("Given an empty template", t, func() {
		l := lineup.Build([]lineup.Score{{PlayerID: "a", Points: 1}}, position.NewTemplate(nil), position.Eligibility{"a": position.NewSet("QB")}, nil, lineup.Max)
		So(l.Slots, ShouldBeEmpty)
		So(l.Total(), ShouldEqual, 0.0)
	})
}
