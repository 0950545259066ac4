package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/domain/alltime"
	"github.com/okian/gridiron/internal/domain/season"
	"github.com/okian/gridiron/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func run() repository.Run {
	return repository.Run{
		ID: "run-1",
		Reports: []*season.Report{
			{Season: "2023", Regular: []season.WeekRecap{{Week: 1}, {Week: 2}}, Standings: []standings.Row{{RosterID: 4}}},
			{Season: "2022"},
			nil,
		},
		AllTime: &alltime.Result{Managers: []alltime.ManagerStats{{OwnerID: "u1", Wins: 3}}},
		HighScores: alltime.HighScoreTables{
			Teams: []alltime.TeamScore{{Points: 150}},
		},
		Failed: map[string]string{"2021": "no league"},
	}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		fixed := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
		store := repository.NewMemoryStore(repository.WithClock(func() time.Time { return fixed }))

		Convey("Then reads fail until a run is published", func() {
			_, err := store.Info(ctx)
			So(errors.Is(err, repository.ErrNotPublished), ShouldBeTrue)
			_, err = store.Season(ctx, "2023")
			So(errors.Is(err, repository.ErrNotPublished), ShouldBeTrue)
		})

		Convey("When a run is published", func() {
			So(store.Publish(ctx, run()), ShouldBeNil)

			Convey("Then the run info lists sorted seasons", func() {
				info, err := store.Info(ctx)
				So(err, ShouldBeNil)
				So(info.ID, ShouldEqual, "run-1")
				So(info.Seasons, ShouldResemble, []string{"2022", "2023"})
				So(info.Managers, ShouldEqual, 1)
				So(info.PublishedAt, ShouldEqual, fixed)
				So(info.Failed["2021"], ShouldEqual, "no league")
			})

			Convey("Then seasons, weeks and standings are served", func() {
				rep, err := store.Season(ctx, "2023")
				So(err, ShouldBeNil)
				So(len(rep.Regular), ShouldEqual, 2)

				w, err := store.Week(ctx, "2023", 2)
				So(err, ShouldBeNil)
				So(w.Week, ShouldEqual, 2)

				rows, err := store.Standings(ctx, "2023")
				So(err, ShouldBeNil)
				So(rows[0].RosterID, ShouldEqual, 4)
			})

			Convey("Then unknown keys are not found", func() {
				_, err := store.Season(ctx, "1999")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				_, err = store.Week(ctx, "2023", 9)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				_, err = store.Manager(ctx, "nobody")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, alltime.ErrEmptyInput), ShouldBeTrue)
			})

			Convey("Then all-time data is served", func() {
				m, err := store.Manager(ctx, "u1")
				So(err, ShouldBeNil)
				So(m.Wins, ShouldEqual, 3)
				hs, err := store.HighScores(ctx)
				So(err, ShouldBeNil)
				So(hs.Teams[0].Points, ShouldEqual, 150.0)
			})

			Convey("Then a later publish replaces the run", func() {
				next := run()
				next.ID = "run-2"
				next.Reports = nil
				So(store.Publish(ctx, next), ShouldBeNil)
				info, _ := store.Info(ctx)
				So(info.ID, ShouldEqual, "run-2")
				So(info.Seasons, ShouldBeEmpty)
			})
		})
	})
}
