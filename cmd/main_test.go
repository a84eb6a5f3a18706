package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/okian/radar/internal/adapters/dataset"
	app "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/config"
	"github.com/okian/radar/internal/domain/bundle"
	"github.com/okian/radar/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// writeDataset writes five centre backs whose defensive metrics equal their index.
func writeDataset(t *testing.T) string {
	t.Helper()
	def, _ := bundle.Resolve("defensive")
	header := append(append([]string{}, dataset.RequiredColumns...), def.Fields()...)

	var b strings.Builder
	b.WriteString(`"` + strings.Join(header, `","`) + "\"\n")
	for i := 0; i < 5; i++ {
		n := strconv.Itoa(i)
		row := []string{"CB " + n, "T" + n, "L1", "LCB", "LCB", "", "", "900", "24", n}
		for range def.Fields() {
			row = append(row, n)
		}
		b.WriteString(strings.Join(row, ",") + "\n")
	}

	path := filepath.Join(t.TempDir(), "players.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given a configuration pointing at a small dataset", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.DatasetPath = writeDataset(t)
		cfg.Bundles = []string{"defensive"}
		cfg.DefaultMinMinutes = 0

		svc := app.New(serviceOptions(cfg, logger.Discard())...)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		r := newRouter(svc, cfg, logger.Discard())
		get := func(target string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
			return w
		}

		convey.Convey("When requesting a profile", func() {
			w := get("/profile?player=CB%204&team=T4&league=L1")

			convey.Convey("Then the top player ranks at the top of every metric except the adverse ones", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

				var p struct {
					Bucket     string `json:"bucket"`
					CohortSize int    `json:"cohort_size"`
					Metrics    []struct {
						Field      string  `json:"field"`
						Percentile float64 `json:"percentile"`
						Adverse    bool    `json:"adverse"`
					} `json:"metrics"`
				}
				convey.So(json.Unmarshal(w.Body.Bytes(), &p), convey.ShouldBeNil)
				convey.So(p.Bucket, convey.ShouldEqual, "CB")
				convey.So(p.CohortSize, convey.ShouldEqual, 5)
				convey.So(len(p.Metrics), convey.ShouldEqual, 8)
				for _, m := range p.Metrics {
					if m.Adverse {
						convey.So(m.Percentile, convey.ShouldEqual, 0.0)
					} else {
						convey.So(m.Percentile, convey.ShouldEqual, 100.0)
					}
				}
			})
		})

		convey.Convey("When requesting a disabled bundle", func() {
			w := get("/profile?player=CB%204&bundle=passing")
			convey.So(w.Code, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("When reading the API reference", func() {
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("When the docs bundle is hosted locally", func() {
			cfg.DocsAssetDir = t.TempDir()
			convey.So(os.WriteFile(filepath.Join(cfg.DocsAssetDir, "redoc.standalone.js"), []byte("//"), 0o600), convey.ShouldBeNil)
			local := newRouter(svc, cfg, logger.Discard())

			w := httptest.NewRecorder()
			local.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-docs", http.NoBody))
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "/api-docs/assets/redoc.standalone.js")

			w = httptest.NewRecorder()
			local.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-docs/assets/redoc.standalone.js", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("When listing bundles", func() {
			w := get("/bundles")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"key":"defensive"`)
			convey.So(w.Body.String(), convey.ShouldNotContainSubstring, `"key":"passing"`)
		})
	})
}
