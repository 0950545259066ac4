package standings_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func game(matchupID, a int, pa float64, b int, pb float64) []model.MatchupEntry {
	return []model.MatchupEntry{
		{RosterID: a, MatchupID: matchupID, Points: pa},
		{RosterID: b, MatchupID: matchupID, Points: pb},
	}
}

func seasonWeeks() []standings.Week {
	w1 := append(game(7, 1, 105.50, 2, 98.25), game(8, 3, 80, 4, 120)...)
	w2 := append(game(1, 1, 90, 3, 90), game(2, 2, 110.1, 4, 99.9)...)
	w3 := append(game(1, 1, 70, 4, 71), game(2, 2, 60, 3, 100)...)
	return []standings.Week{
		{Number: 1, Entries: w1, Transactions: []model.Transaction{
			{Status: model.TransactionComplete, RosterIDs: []int{1, 2}},
			{Status: "failed", RosterIDs: []int{3}},
			{Status: model.TransactionComplete, RosterIDs: []int{99}},
		}},
		{Number: 2, Entries: w2},
		{Number: 3, Entries: w3, Transactions: []model.Transaction{{Status: model.TransactionComplete, RosterIDs: []int{1}}}},
	}
}

func name(id int) string { return "Team " + strconv.Itoa(id) }

func TestAdvance(t *testing.T) {
	Convey("Given the opening week", t, func() {
		weeks := seasonWeeks()
		s, err := standings.Advance(standings.Seed([]int{1, 2, 3, 4}), weeks[0])
		So(err, ShouldBeNil)

		Convey("Then the winner and loser are credited", func() {
			a, _ := s.Record(1)
			b, _ := s.Record(2)
			So([]int{a.Wins, a.Losses, a.Ties}, ShouldResemble, []int{1, 0, 0})
			So(a.PointsFor, ShouldEqual, 105.50)
			So([]int{b.Wins, b.Losses, b.Ties}, ShouldResemble, []int{0, 1, 0})
			So(b.PointsFor, ShouldEqual, 98.25)
			So(b.PointsAgainst, ShouldEqual, 105.50)
		})

		Convey("Then only complete transactions of known rosters count", func() {
			a, _ := s.Record(1)
			c, _ := s.Record(3)
			So(a.Transactions, ShouldEqual, 1)
			So(c.Transactions, ShouldEqual, 0)
			_, ok := s.Record(99)
			So(ok, ShouldBeFalse)
		})

		Convey("Then the snapshot is partial at week 1", func() {
			So(s.State(), ShouldEqual, standings.Partial)
			So(s.Week(), ShouldEqual, 1)
		})
	})

	Convey("Given a snapshot that is advanced again", t, func() {
		weeks := seasonWeeks()
		s1, _ := standings.Advance(nil, weeks[0])
		s2, err := standings.Advance(s1, weeks[1])
		So(err, ShouldBeNil)

		Convey("Then the earlier snapshot is untouched", func() {
			a, _ := s1.Record(1)
			So(a.Games(), ShouldEqual, 1)
			a2, _ := s2.Record(1)
			So(a2.Ties, ShouldEqual, 1)
		})

		Convey("Then replaying a week is rejected", func() {
			_, err := standings.Advance(s2, weeks[1])
			So(errors.Is(err, standings.ErrWeekOrder), ShouldBeTrue)
		})

		Convey("Then a final snapshot cannot advance", func() {
			_, err := standings.Advance(standings.Finalize(s2), weeks[2])
			So(errors.Is(err, standings.ErrFinal), ShouldBeTrue)
		})
	})
}

func TestIncrementalEquivalence(t *testing.T) {
	Convey("Given the same weeks folded two ways", t, func() {
		weeks := seasonWeeks()
		ids := []int{1, 2, 3, 4}

		full, err := standings.Accumulate(ids, weeks)
		So(err, ShouldBeNil)

		cache := standings.NewMemoryCache()
		prefix, _ := standings.Accumulate(ids, weeks[:2])
		cache.Put("2023", prefix)
		cached, ok := cache.Get("2023", 2)
		So(ok, ShouldBeTrue)
		incremental, err := standings.Advance(cached, weeks[2])
		So(err, ShouldBeNil)

		Convey("Then the records are identical", func() {
			So(incremental.Records(), ShouldResemble, full.Records())
			So(incremental.Week(), ShouldEqual, full.Week())
			So(cache.Len(), ShouldEqual, 1)
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given accumulated standings", t, func() {
		s, _ := standings.Accumulate([]int{1, 2, 3, 4}, seasonWeeks())
		rows := standings.Rank(s, name)

		Convey("Then rows sort by rounded win fraction then points for", func() {
			ids := make([]int, 0, len(rows))
			for _, r := range rows {
				ids = append(ids, r.RosterID)
			}
			// 4 is 2-1; 3, 2 and 1 all sit at .3333 and split on points for
			So(ids, ShouldResemble, []int{4, 3, 2, 1})
			So(rows[0].WinPct, ShouldEqual, 0.6667)
			So(rows[0].TeamName, ShouldEqual, "Team 4")
			So(rows[2].PointsFor, ShouldEqual, 268.35)
			So(rows[3].Ties, ShouldEqual, 1)
		})

		Convey("Then ranking is repeatable", func() {
			So(standings.Rank(s, name), ShouldResemble, rows)
		})
	})

	Convey("Given rosters with identical keys", t, func() {
		s := standings.Seed([]int{5, 3, 9})
		rows := standings.Rank(s, name)

		Convey("Then they keep snapshot order", func() {
			So([]int{rows[0].RosterID, rows[1].RosterID, rows[2].RosterID}, ShouldResemble, []int{5, 3, 9})
			So(rows[0].WinPct, ShouldEqual, 0.0)
		})
	})
}
