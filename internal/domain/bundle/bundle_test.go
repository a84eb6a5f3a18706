package bundle_test

import (
	"errors"
	"testing"

	"github.com/okian/radar/internal/domain/bundle"
	. "github.com/smartystreets/goconvey/convey"
)

type columns map[string]bool

func (c columns) HasColumn(f string) bool { return c[f] }

func TestResolve(t *testing.T) {
	Convey("Given the bundle catalog", t, func() {
		Convey("When resolving a known key in any case", func() {
			b, err := bundle.Resolve(" Defensive ")
			So(err, ShouldBeNil)
			So(b.Key, ShouldEqual, "defensive")
			So(len(b.Metrics), ShouldEqual, 8)
		})

		Convey("When resolving an unknown key", func() {
			_, err := bundle.Resolve("goalkeeping")
			So(errors.Is(err, bundle.ErrUnknownBundle), ShouldBeTrue)
		})

		Convey("Then keys and bundles share one order", func() {
			keys := bundle.Keys()
			all := bundle.All()
			So(len(all), ShouldEqual, len(keys))
			for i, b := range all {
				So(b.Key, ShouldEqual, keys[i])
			}
		})

		Convey("Then mutating Keys does not leak into the catalog", func() {
			keys := bundle.Keys()
			keys[0] = "x"
			So(bundle.Keys()[0], ShouldNotEqual, "x")
		})
	})
}

func TestAdverse(t *testing.T) {
	Convey("Given the defensive bundle", t, func() {
		b, _ := bundle.Resolve("defensive")

		So(b.IsAdverse("Fouls per 90"), ShouldBeTrue)
		So(b.IsAdverse("Cards per 90"), ShouldBeTrue)
		So(b.IsAdverse("PAdj Interceptions"), ShouldBeFalse)
		So(b.AdverseFields(), ShouldResemble, []string{"Fouls per 90", "Cards per 90"})
	})

	Convey("Given the attacking bundle", t, func() {
		b, _ := bundle.Resolve("attacking")

		Convey("Then fouls suffered is not adverse", func() {
			So(b.IsAdverse("Fouls suffered per 90"), ShouldBeFalse)
			So(b.AdverseFields(), ShouldBeEmpty)
		})
	})
}

func TestValidateSchema(t *testing.T) {
	Convey("Given a schema", t, func() {
		def, _ := bundle.Resolve("defensive")
		cols := columns{}
		for _, f := range def.Fields() {
			cols[f] = true
		}

		Convey("When every field of the bundle exists", func() {
			So(bundle.ValidateSchema(cols, "defensive"), ShouldBeNil)
		})

		Convey("When fields are missing", func() {
			delete(cols, "Cards per 90")
			err := bundle.ValidateSchema(cols, "defensive")
			So(errors.Is(err, bundle.ErrMissingField), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Cards per 90")
		})

		Convey("When validating the whole catalog against a partial schema", func() {
			err := bundle.ValidateSchema(cols)
			So(errors.Is(err, bundle.ErrMissingField), ShouldBeTrue)
		})

		Convey("When a key is unknown", func() {
			err := bundle.ValidateSchema(cols, "nope")
			So(errors.Is(err, bundle.ErrUnknownBundle), ShouldBeTrue)
		})
	})
}
