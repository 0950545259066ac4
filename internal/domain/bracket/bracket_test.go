package bracket_test

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/okian/gridiron/internal/domain/bracket"
	"github.com/okian/gridiron/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func namer(id int) string { return "Team " + strconv.Itoa(id) }

func decode(raw string) []model.BracketNode {
	var nodes []model.BracketNode
	if err := json.Unmarshal([]byte(raw), &nodes); err != nil {
		panic(err)
	}
	return nodes
}

func TestResolve(t *testing.T) {
	Convey("Given a four-team bracket halfway through", t, func() {
		nodes := decode(`[
			{"r":2,"m":3,"t1":null,"t2":null,"t1_from":{"w":1},"t2_from":{"w":2},"w":null,"l":null,"p":1},
			{"r":1,"m":1,"t1":4,"t2":5,"w":4,"l":5},
			{"r":1,"m":2,"t1":6,"t2":7,"w":null,"l":null},
			{"r":2,"m":4,"t1":null,"t2":null,"t1_from":{"l":1},"t2_from":{"l":2},"w":null,"l":null,"p":3}
		]`)

		matches, err := bracket.Resolve(nodes, namer)
		So(err, ShouldBeNil)

		Convey("Then matches keep input order", func() {
			So(len(matches), ShouldEqual, 4)
			So(matches[0].Match, ShouldEqual, 3)
		})

		Convey("Then a decided upstream match feeds its winner forward", func() {
			final := matches[0]
			So(final.Team1.TeamName, ShouldEqual, "Team 4")
			So(*final.Team1.RosterID, ShouldEqual, 4)
			So(final.Team1.Source, ShouldEqual, "winner")
			So(final.Team1.SourceOf, ShouldEqual, 1)
		})

		Convey("Then an undecided upstream match leaves a placeholder", func() {
			So(matches[0].Team2.TeamName, ShouldEqual, bracket.TBD)
			So(matches[0].Team2.Known(), ShouldBeFalse)
			So(matches[0].Decided(), ShouldBeFalse)
		})

		Convey("Then loser references resolve too", func() {
			So(matches[3].Team1.TeamName, ShouldEqual, "Team 5")
		})

		Convey("Then rounds are grouped and ordered", func() {
			rounds := bracket.ByRound(matches)
			So(len(rounds), ShouldEqual, 2)
			So(rounds[0].Number, ShouldEqual, 1)
			So(rounds[1].Matches[0].Match, ShouldEqual, 3)
		})
	})

	Convey("Given a decided final", t, func() {
		nodes := decode(`[{"r":1,"m":1,"t1":1,"t2":2,"w":2,"l":1,"p":1}]`)
		matches, err := bracket.Resolve(nodes, namer)
		So(err, ShouldBeNil)

		champ, ok := bracket.Champion(matches)
		So(ok, ShouldBeTrue)
		So(champ.TeamName, ShouldEqual, "Team 2")
	})

	Convey("Given nodes that reference each other", t, func() {
		nodes := decode(`[
			{"r":1,"m":1,"t1_from":{"w":2},"t2":3},
			{"r":1,"m":2,"t1_from":{"w":1},"t2":4}
		]`)

		_, err := bracket.Resolve(nodes, namer)

		Convey("Then the cycle is reported", func() {
			So(errors.Is(err, bracket.ErrCycle), ShouldBeTrue)
		})
	})

	Convey("Given a reference to a missing match", t, func() {
		nodes := decode(`[{"r":2,"m":5,"t1_from":{"w":9},"t2":1}]`)
		_, err := bracket.Resolve(nodes, namer)
		So(errors.Is(err, bracket.ErrUnknownNode), ShouldBeTrue)
	})
}
