package alltime_test

import (
	"errors"
	"testing"

	"github.com/okian/gridiron/internal/domain/alltime"
	"github.com/okian/gridiron/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func pair(matchupID, a int, pa float64, b int, pb float64) []model.MatchupEntry {
	return []model.MatchupEntry{
		{RosterID: a, MatchupID: matchupID, Points: pa},
		{RosterID: b, MatchupID: matchupID, Points: pb},
	}
}

func join(groups ...[]model.MatchupEntry) []model.MatchupEntry {
	var out []model.MatchupEntry
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func history() []alltime.Season {
	return []alltime.Season{
		{
			Season:  "2022",
			Owners:  map[int]string{1: "u1", 2: "u2", 3: "u3", 4: "u4"},
			Display: map[string]string{"u1": "alice", "u2": "bob", "u3": "carol", "u4": "dave"},
			Weeks: []alltime.Week{
				{Number: 3, Entries: join(pair(1, 1, 85, 2, 80), pair(2, 3, 100, 4, 110))},
				{Number: 1, Entries: join(pair(1, 1, 100, 2, 90), pair(2, 3, 80, 4, 120))},
				{Number: 2, Entries: join(pair(1, 1, 70, 3, 75), pair(2, 2, 110, 4, 60))},
			},
		},
		{
			Season:  "2021",
			Owners:  map[int]string{1: "u1", 2: "u2", 5: "u5"},
			Display: map[string]string{"u1": "alice", "u2": "bob", "u5": "erin"},
			Weeks: []alltime.Week{
				{Number: 1, Entries: join(pair(1, 1, 50, 2, 60), pair(2, 5, 70, 9, 65))},
			},
		},
	}
}

func TestCompute(t *testing.T) {
	Convey("Given two seasons of games", t, func() {
		res := alltime.Compute(history())

		Convey("Then managers rank by win percentage then points for", func() {
			ids := make([]string, 0, len(res.Managers))
			for _, m := range res.Managers {
				ids = append(ids, m.OwnerID)
			}
			So(ids, ShouldResemble, []string{"u4", "u2", "u1", "u3"})
		})

		Convey("Then a manager without resolvable games is omitted", func() {
			_, err := res.Manager("u5")
			So(errors.Is(err, alltime.ErrEmptyInput), ShouldBeTrue)
		})

		Convey("Then career totals and averages are computed", func() {
			m, err := res.Manager("u1")
			So(err, ShouldBeNil)
			So(m.DisplayName, ShouldEqual, "alice")
			So(m.Seasons, ShouldEqual, 2)
			So(m.GamesPlayed, ShouldEqual, 4)
			So(m.Wins, ShouldEqual, 2)
			So(m.Losses, ShouldEqual, 2)
			So(m.WinPct, ShouldEqual, 50.0)
			So(m.TotalPF, ShouldEqual, 305.0)
			So(m.AvgPF, ShouldEqual, 76.25)
			So(m.AvgMargin, ShouldEqual, 0.0)
			So(m.AvgWinMargin, ShouldEqual, 7.5)
			So(m.AvgLossMargin, ShouldEqual, -7.5)
			So(m.PointsStdev, ShouldAlmostEqual, 21.36, 0.01)
		})

		Convey("Then extremes carry their season and week", func() {
			m, _ := res.Manager("u1")
			So(m.HighScore, ShouldResemble, alltime.Mark{Value: 100, Season: "2022", Week: 1})
			So(m.LowScore, ShouldResemble, alltime.Mark{Value: 50, Season: "2021", Week: 1})
			So(m.LargestWin, ShouldResemble, alltime.Mark{Value: 10, Season: "2022", Week: 1})
			So(m.SmallestWin, ShouldResemble, alltime.Mark{Value: 5, Season: "2022", Week: 3})
			So(m.LargestLoss, ShouldResemble, alltime.Mark{Value: -10, Season: "2021", Week: 1})
			So(m.SmallestLoss, ShouldResemble, alltime.Mark{Value: -5, Season: "2022", Week: 2})
		})

		Convey("Then luck is judged against the weekly median", func() {
			u1, _ := res.Manager("u1")
			So(u1.WeeksAboveMedian, ShouldEqual, 1)
			So(u1.MedianWinPct, ShouldEqual, 25.0)
			So(u1.LuckyWins, ShouldEqual, 1)
			So(u1.LowScoreWeeks, ShouldEqual, 1)

			u3, _ := res.Manager("u3")
			So(u3.UnluckyLosses, ShouldEqual, 1)

			u4, _ := res.Manager("u4")
			So(u4.TopScoreWeeks, ShouldEqual, 2)
		})

		Convey("Then head-to-head counts match from both sides", func() {
			ab := res.Record("u1", "u2")
			ba := res.Record("u2", "u1")
			So(ab, ShouldResemble, alltime.H2H{Wins: 2, Losses: 1})
			So(ba, ShouldResemble, alltime.H2H{Wins: 1, Losses: 2})
			So(ab.Games(), ShouldEqual, ba.Games())
			So(res.Record("u1", "u4").Games(), ShouldEqual, 0)
		})

		Convey("Then the matrix order follows display names", func() {
			So(res.Order, ShouldResemble, []string{"u1", "u2", "u3", "u4"})
		})

		Convey("Then a second run gives the same result", func() {
			So(alltime.Compute(history()), ShouldResemble, res)
		})
	})

	Convey("Given no seasons", t, func() {
		res := alltime.Compute(nil)
		So(res.Managers, ShouldBeEmpty)
		So(res.Order, ShouldBeEmpty)
	})
}

func TestHighScores(t *testing.T) {
	Convey("Given weekly team and player scores", t, func() {
		teams := []alltime.TeamScore{
			{Points: 120, Season: "2022", Week: 1, TeamName: "A"},
			{Points: 150, Season: "2021", Week: 4, TeamName: "B"},
			{Points: 120, Season: "2023", Week: 2, TeamName: "C"},
		}
		players := []alltime.PlayerScore{
			{Points: 40, PlayerName: "X"},
			{Points: 55.5, PlayerName: "Y"},
		}

		tables := alltime.HighScores(teams, players, 2)

		Convey("Then the best scores come first and ties keep input order", func() {
			So(len(tables.Teams), ShouldEqual, 2)
			So(tables.Teams[0].TeamName, ShouldEqual, "B")
			So(tables.Teams[1].TeamName, ShouldEqual, "A")
			So(tables.Players[0].PlayerName, ShouldEqual, "Y")
		})

		Convey("Then the input is not reordered", func() {
			So(teams[0].TeamName, ShouldEqual, "A")
		})

		Convey("Then a non-positive limit keeps everything", func() {
			So(len(alltime.HighScores(teams, nil, 0).Teams), ShouldEqual, 3)
		})
	})
}
