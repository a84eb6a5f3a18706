package smoke

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/okian/radar/internal/adapters/dataset"
	"github.com/okian/radar/internal/adapters/http/api"
	app "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/domain/bundle"
	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func defensiveFixture() []model.Player {
	def, _ := bundle.Resolve("defensive")
	var ps []model.Player
	for i := 0; i < 6; i++ {
		m := map[string]float64{}
		for _, f := range def.Fields() {
			m[f] = float64(i)
		}
		league := "L1"
		if i%2 == 1 {
			league = "L2"
		}
		ps = append(ps, model.Player{
			ID: strconv.Itoa(i), Name: "P" + strconv.Itoa(i), Team: "T", League: league,
			Position: "RCB", Positions: [3]string{"RCB"}, Minutes: 1000, Age: 22, Metrics: m,
		})
	}
	return ps
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	def, _ := bundle.Resolve("defensive")
	svc := app.New(
		app.WithLogger(logger.Discard()),
		app.WithDataset(model.NewDataset(defensiveFixture(), def.Fields())),
		app.WithBundles([]string{"defensive"}),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	srv := httptest.NewServer(api.NewServer(svc).Router())
	t.Cleanup(srv.Close)
	return srv
}

func targets(names ...string) []Target {
	out := make([]Target, len(names))
	for i, n := range names {
		league := "L1"
		if n[len(n)-1]%2 == 1 {
			league = "L2"
		}
		out[i] = Target{Player: n, Team: "T", League: league}
	}
	return out
}

func TestRun(t *testing.T) {
	Convey("Given a live profile server", t, func() {
		srv := newTestServer(t)
		cfg := &Config{BaseURL: srv.URL, Concurrency: 3, Timeout: 5 * time.Second, Scopes: []string{"global", "same_league"}, Logger: logger.Discard()}

		Convey("When every target exists", func() {
			rep, err := Run(context.Background(), cfg, targets("P0", "P3", "P5"))

			Convey("Then every profile verifies", func() {
				So(err, ShouldBeNil)
				So(rep.Requests, ShouldEqual, int64(6))
				So(rep.Profiles, ShouldEqual, int64(6))
				So(rep.Violations, ShouldBeEmpty)
				So(rep.RunID, ShouldNotBeEmpty)
			})
		})

		Convey("When a target is unknown", func() {
			rep, err := Run(context.Background(), cfg, []Target{{Player: "Nobody"}})

			Convey("Then the rejection is counted, not reported as a violation", func() {
				So(err, ShouldBeNil)
				So(rep.Rejected["player_not_found"], ShouldEqual, int64(2))
				So(rep.Profiles, ShouldEqual, int64(0))
			})
		})
	})

	Convey("Given an unreachable server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()
		cfg := &Config{BaseURL: srv.URL, Concurrency: 1, Timeout: time.Second, Logger: logger.Discard()}

		_, err := Run(context.Background(), cfg, targets("P0"))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "health check")
	})
}

func TestVerifyProfile(t *testing.T) {
	Convey("Given a bundle with one adverse metric", t, func() {
		var b Bundle
		b.Key = "defensive"
		b.Metrics = append(b.Metrics,
			struct {
				Field string `json:"field"`
			}{"Shots blocked per 90"},
			struct {
				Field string `json:"field"`
			}{"Fouls per 90"},
		)
		b.Adverse = []string{"Fouls per 90"}

		good := Profile{Player: "P", Bundle: "defensive", Scope: "global", CohortSize: 4, Metrics: []Metric{
			{Field: "Shots blocked per 90", Percentile: 75, Tier: 4, TierLabel: "Above average", Color: "#329999", Sample: 4},
			{Field: "Fouls per 90", Percentile: 25, Adverse: true, Tier: 1, TierLabel: "Very below average", Color: "#a20e0e", Sample: 4},
		}}

		Convey("When the profile is consistent", func() {
			So(verifyProfile(good, b), ShouldBeEmpty)
		})

		Convey("When a tier does not match its percentile", func() {
			good.Metrics[0].Tier = 6
			So(len(verifyProfile(good, b)), ShouldEqual, 1)
		})

		Convey("When the adverse flag is wrong", func() {
			good.Metrics[1].Adverse = false
			got := verifyProfile(good, b)
			So(len(got), ShouldEqual, 1)
			So(got[0], ShouldContainSubstring, "adverse")
		})

		Convey("When the metric order differs", func() {
			good.Metrics[0], good.Metrics[1] = good.Metrics[1], good.Metrics[0]
			So(len(verifyProfile(good, b)), ShouldBeGreaterThan, 0)
		})

		Convey("When a percentile is out of range", func() {
			good.Metrics[0].Percentile = 101
			good.Metrics[0].Tier = 6
			good.Metrics[0].TierLabel = "Top 5%"
			good.Metrics[0].Color = "#814a66"
			got := verifyProfile(good, b)
			So(len(got), ShouldEqual, 1)
			So(got[0], ShouldContainSubstring, "out of range")
		})

		Convey("When a metric is missing", func() {
			good.Metrics = good.Metrics[:1]
			So(len(verifyProfile(good, b)), ShouldEqual, 1)
		})
	})
}

func TestLoadTargets(t *testing.T) {
	Convey("Given a dataset file", t, func() {
		var sb strings.Builder
		sb.WriteString(strings.Join(dataset.RequiredColumns, ",") + ",Shots per 90\n")
		for i := 0; i < 10; i++ {
			n := strconv.Itoa(i)
			sb.WriteString("P" + n + ",T,L1,CB,CB,,,900,20," + n + "," + n + "\n")
		}
		path := filepath.Join(t.TempDir(), "players.csv")
		So(os.WriteFile(path, []byte(sb.String()), 0o600), ShouldBeNil)

		Convey("When sampling fewer players than rows", func() {
			got, err := LoadTargets(context.Background(), path, 5)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 5)
			So(got[0].Player, ShouldEqual, "P0")
			So(got[1].Player, ShouldEqual, "P2")
			So(got[4].Player, ShouldEqual, "P8")
		})

		Convey("When sampling zero", func() {
			got, err := LoadTargets(context.Background(), path, 0)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 10)
		})

		Convey("When the file is missing", func() {
			_, err := LoadTargets(context.Background(), filepath.Join(t.TempDir(), "none.csv"), 1)
			So(err, ShouldNotBeNil)
		})
	})
}
