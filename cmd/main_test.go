package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/gridiron/internal/adapters/http/api"
	"github.com/okian/gridiron/internal/adapters/repository"
	app "github.com/okian/gridiron/internal/app"
	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func writeRaw(t *testing.T, dir string) {
	docs := map[string]string{
		"2023/league_info.json":     `{"name":"Dynasty","settings":{"playoff_week_start":15,"last_scored_leg":17}}`,
		"2023/users.json":           `[{"user_id":"u1","display_name":"alice"},{"user_id":"u2","display_name":"bob"}]`,
		"2023/rosters.json":         `[{"roster_id":1,"owner_id":"u1"},{"roster_id":2,"owner_id":"u2"}]`,
		"2023/week_1/matchups.json": `[{"roster_id":1,"matchup_id":1,"points":10},{"roster_id":2,"matchup_id":1,"points":12}]`,
	}
	for k, v := range docs {
		p := filepath.Join(dir, filepath.FromSlash(k))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(v), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun(t *testing.T) {
	convey.Convey("Given a file backend config over raw data", t, func() {
		cfg := config.New()
		cfg.RawRoot = t.TempDir()
		cfg.OutputRoot = t.TempDir()
		writeRaw(t, cfg.RawRoot)

		convey.Convey("When running without serving", func() {
			err := run(context.Background(), cfg, logger.Nop())

			convey.Convey("Then the outputs are written", func() {
				convey.So(err, convey.ShouldBeNil)
				_, err := os.Stat(filepath.Join(cfg.OutputRoot, "manifest.json"))
				convey.So(err, convey.ShouldBeNil)
				_, err = os.Stat(filepath.Join(cfg.OutputRoot, "all_time", "standings.csv"))
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the raw root holds no seasons", func() {
			cfg.RawRoot = t.TempDir()
			err := run(context.Background(), cfg, logger.Nop())

			convey.So(errors.Is(err, app.ErrNoSeasons), convey.ShouldBeTrue)
		})

		convey.Convey("When serving until cancelled", func() {
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			convey.So(err, convey.ShouldBeNil)
			cfg.Addr = ln.Addr().String()
			_ = ln.Close()
			cfg.Serve = true

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg, logger.Nop()) }()

			var resp *http.Response
			for i := 0; i < 50; i++ {
				resp, err = http.Get("http://" + cfg.Addr + "/seasons/2023/standings")
				if err == nil {
					break
				}
				time.Sleep(20 * time.Millisecond)
			}
			convey.So(err, convey.ShouldBeNil)
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			_ = resp.Body.Close()

			cancel()
			convey.So(<-done, convey.ShouldBeNil)
		})
	})
}

func TestServe(t *testing.T) {
	convey.Convey("Given an address already in use", t, func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = ln.Close() }()

		err = serve(context.Background(), ln.Addr().String(), http.NotFoundHandler(), logger.Nop())

		convey.So(errors.Is(err, api.ErrServe), convey.ShouldBeTrue)
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the handler over an empty repository", t, func() {
		h := newHandler(context.Background(), repository.NewMemoryStore(), logger.Nop())

		convey.Convey("Then health is served", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then the API docs are served", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}
