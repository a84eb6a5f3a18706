package ranking_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/okian/radar/internal/domain/bundle"
	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

// row builds a player holding v for every field of b, with overrides applied.
func row(name string, b bundle.Bundle, v float64, overrides map[string]float64) model.Player {
	m := make(map[string]float64, len(b.Metrics))
	for _, f := range b.Fields() {
		m[f] = v
	}
	for f, x := range overrides {
		m[f] = x
	}
	return model.Player{ID: name, Name: name, Team: "T", League: "L", Metrics: m}
}

func find(res ranking.Result, field string) ranking.MetricRank {
	for _, m := range res.Metrics {
		if m.Field == field {
			return m
		}
	}
	return ranking.MetricRank{}
}

func TestRank(t *testing.T) {
	Convey("Given ten centre backs with shots 0 to 9", t, func() {
		b, err := bundle.Resolve("general")
		So(err, ShouldBeNil)
		cohort := make([]model.Player, 0, 10)
		for i := 0; i < 10; i++ {
			cohort = append(cohort, row("p"+strconv.Itoa(i), b, float64(i), nil))
		}

		Convey("When ranking the player with value 9", func() {
			res, err := ranking.Rank(cohort[9], cohort, b)
			So(err, ShouldBeNil)

			Convey("Then shots per 90 is the top percentile", func() {
				m := find(res, "Shots per 90")
				So(m.Percentile, ShouldEqual, 100.00)
				So(m.Tier, ShouldEqual, ranking.Tier6)
				So(m.Sample, ShouldEqual, 10)
				So(m.CohortMedian, ShouldEqual, 4.0)
			})

			Convey("And metrics keep bundle order", func() {
				So(len(res.Metrics), ShouldEqual, len(b.Metrics))
				for i, m := range res.Metrics {
					So(m.Field, ShouldEqual, b.Metrics[i].Field)
					So(m.Label, ShouldEqual, b.Metrics[i].Label)
				}
				So(res.CohortSize, ShouldEqual, 10)
			})
		})

		Convey("When ranking the player with value 2", func() {
			res, err := ranking.Rank(cohort[2], cohort, b)
			So(err, ShouldBeNil)
			m := find(res, "Shots per 90")
			So(m.Percentile, ShouldEqual, 30.00)
			So(m.Tier, ShouldEqual, ranking.Tier1)
		})

		Convey("When the player is not a member of the cohort", func() {
			outsider := row("x", b, 4.5, nil)
			res, err := ranking.Rank(outsider, cohort, b)
			So(err, ShouldBeNil)
			So(find(res, "Shots per 90").Percentile, ShouldEqual, 50.00)
		})
	})

	Convey("Given a cohort with ties", t, func() {
		b, _ := bundle.Resolve("defensive")
		cohort := []model.Player{
			row("a", b, 1, nil),
			row("b", b, 2, nil),
			row("c", b, 2, nil),
			row("d", b, 3, nil),
		}

		Convey("When ranking a tied value", func() {
			res, err := ranking.Rank(cohort[1], cohort, b)
			So(err, ShouldBeNil)

			Convey("Then ties count as less or equal", func() {
				m := find(res, "PAdj Interceptions")
				So(m.Percentile, ShouldEqual, 75.00)
				So(m.Adverse, ShouldBeFalse)
			})

			Convey("And adverse metrics are inverted", func() {
				m := find(res, "Fouls per 90")
				So(m.Adverse, ShouldBeTrue)
				So(m.Percentile, ShouldEqual, 25.00)
			})
		})
	})

	Convey("Given error conditions", t, func() {
		b, _ := bundle.Resolve("defensive")
		p := row("a", b, 1, nil)

		Convey("When the cohort is empty", func() {
			_, err := ranking.Rank(p, nil, b)
			So(errors.Is(err, ranking.ErrEmptyCohort), ShouldBeTrue)
		})

		Convey("When the player lacks a field", func() {
			q := row("q", b, 1, nil)
			delete(q.Metrics, "Cards per 90")
			_, err := ranking.Rank(q, []model.Player{p}, b)
			So(errors.Is(err, ranking.ErrMissingField), ShouldBeTrue)
			So(errors.Is(err, bundle.ErrMissingField), ShouldBeTrue)
		})

		Convey("When the player value is empty", func() {
			q := row("q", b, 1, map[string]float64{"Cards per 90": math.NaN()})
			_, err := ranking.Rank(q, []model.Player{p}, b)
			So(errors.Is(err, ranking.ErrMissingValue), ShouldBeTrue)
		})

		Convey("When cohort members have empty values", func() {
			gap := row("gap", b, 0, map[string]float64{"PAdj Interceptions": math.NaN()})
			res, err := ranking.Rank(p, []model.Player{p, gap}, b)
			So(err, ShouldBeNil)
			m := find(res, "PAdj Interceptions")
			So(m.Sample, ShouldEqual, 1)
			So(m.Percentile, ShouldEqual, 100.00)
		})

		Convey("When every cohort value of a field is empty", func() {
			gap := row("gap", b, 0, map[string]float64{"PAdj Interceptions": math.NaN()})
			_, err := ranking.Rank(p, []model.Player{gap}, b)
			So(errors.Is(err, ranking.ErrEmptyCohort), ShouldBeTrue)
		})
	})
}

func TestPercentile(t *testing.T) {
	Convey("Given a sorted population", t, func() {
		values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

		Convey("Then adverse and plain percentiles sum to 100 within a hundredth", func() {
			for _, v := range []float64{-1, 0, 2.5, 3, 9, 12} {
				plain := ranking.Percentile(values, v, false)
				inv := ranking.Percentile(values, v, true)
				So(plain+inv, ShouldAlmostEqual, 100, 0.010001)
			}
		})

		Convey("Then adverse values are inverted before rounding", func() {
			wide := make([]float64, 160)
			for i := range wide {
				wide[i] = float64(i)
			}
			// 100 - 1/160*100 = 99.375, which rounds half away from zero.
			So(ranking.Percentile(wide, 0, true), ShouldEqual, 99.38)
			So(ranking.Percentile(wide, 0, true)+ranking.Percentile(wide, 0, false), ShouldAlmostEqual, 100, 0.010001)
		})

		Convey("Then values below and above the range clamp", func() {
			So(ranking.Percentile(values, -1, false), ShouldEqual, 0.0)
			So(ranking.Percentile(values, 99, false), ShouldEqual, 100.0)
		})

		Convey("Then results are rounded to two decimals", func() {
			thirds := []float64{1, 2, 3}
			So(ranking.Percentile(thirds, 1, false), ShouldEqual, 33.33)
			So(ranking.Percentile(thirds, 2, false), ShouldEqual, 66.67)
			So(ranking.Percentile(thirds, 1, true), ShouldEqual, 66.67)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given tier boundaries", t, func() {
		cases := []struct {
			pct  float64
			want ranking.Tier
		}{
			{0, ranking.Tier1},
			{30.00, ranking.Tier1},
			{30.01, ranking.Tier2},
			{45.00, ranking.Tier2},
			{45.01, ranking.Tier3},
			{65.00, ranking.Tier3},
			{65.01, ranking.Tier4},
			{80.00, ranking.Tier4},
			{80.01, ranking.Tier5},
			{95.00, ranking.Tier5},
			{95.01, ranking.Tier6},
			{100, ranking.Tier6},
		}
		for _, c := range cases {
			So(ranking.Classify(c.pct), ShouldEqual, c.want)
		}
	})

	Convey("Given the tier palette", t, func() {
		So(ranking.Tier1.Color(), ShouldEqual, "#a20e0e")
		So(ranking.Tier6.Label(), ShouldEqual, "Top 5%")
		So(ranking.Tier3.TextColor(), ShouldEqual, "#000000")
		So(ranking.Tier5.TextColor(), ShouldEqual, "#ffffff")
		So(len(ranking.Tiers()), ShouldEqual, 6)
	})
}
