package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then defaults are applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "gridiron")
				So(manager.subsystem, ShouldEqual, "league")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are kept", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})
		})

		Convey("When empty values are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then they are ignored", func() {
				So(manager.namespace, ShouldEqual, "gridiron")
				So(manager.subsystem, ShouldEqual, "league")
				So(manager.histogramBuckets, ShouldResemble, prometheus.ExponentialBuckets(1, 2, 14))
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording pipeline metrics", func() {
			before := testutil.ToFloat64(globalManager.lineupBuilds.WithLabelValues("max"))
			RecordLineupBuild("max")
			RecordLineupBuild("max")

			Convey("Then the counters move", func() {
				So(testutil.ToFloat64(globalManager.lineupBuilds.WithLabelValues("max")), ShouldEqual, before+2)
			})
		})

		Convey("When setting repository gauges", func() {
			UpdateRepositoryRecords("seasons", 3)
			UpdateRepositoryRecords("seasons", 5)

			Convey("Then the last value wins", func() {
				So(testutil.ToFloat64(globalManager.repositoryRecords.WithLabelValues("seasons")), ShouldEqual, 5)
			})
		})

		Convey("When recording the remaining helpers", func() {
			So(func() {
				RecordSeasonProcessed("ok")
				RecordWeekProcessed("regular")
				RecordMalformedGroup()
				RecordMissingReference("roster")
				RecordStageDuration("season", 12.5)
				RecordStorageOperation("file", "load", "ok")
				RecordExportWrite("csv")
				UpdateLastRun(1700000000)
				RecordHTTPRequest("/healthz", "GET", "200")
				RecordHTTPRequestDuration("/healthz", "GET", "200", 1.5)
				RecordErrorByComponent("storage", "not_found")
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then our metrics are exposed", func() {
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "gridiron_league_lineup_builds_total")
			})
		})
	})
}
