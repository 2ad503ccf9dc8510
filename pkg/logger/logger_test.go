package logger_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ratelab/pkg/logger"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then the global instance is available", func() {
			So(logger.Get(), ShouldNotBeNil)
		})

		Convey("Then named loggers derive from it", func() {
			named := logger.Named("estimator")
			So(named, ShouldNotBeNil)
			So(func() {
				named.Info(context.Background(), "sweep finished",
					logger.Int("iteration", 3),
					logger.Float64("l2", 0.5),
					logger.String("backend", "dense"),
					logger.Int64("games", 100),
					logger.Any("anchor", true),
					logger.Error(errors.New("boom")))
			}, ShouldNotPanic)
		})

		Convey("Then every level logs without panicking", func() {
			log := logger.Get()
			ctx := context.Background()
			So(func() {
				log.Debug(ctx, "debug")
				log.Info(ctx, "info")
				log.Warn(ctx, "warn")
				log.Error(ctx, "error")
			}, ShouldNotPanic)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given the level names the tools accept", t, func() {
		So(logger.Init(), ShouldBeNil)

		for _, level := range []string{"debug", "info", "warn", "warning", "error", "DEBUG", " info ", ""} {
			level := level

			Convey("Then "+`"`+level+`"`+" parses", func() {
				So(logger.SetLevelString(level), ShouldBeNil)
			})
		}

		Convey("Then an unknown name is rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field helpers", t, func() {
		Convey("Then keys and values are carried through", func() {
			So(logger.String("k", "v"), ShouldResemble, logger.Field{Key: "k", Value: "v"})
			So(logger.Int("n", 7), ShouldResemble, logger.Field{Key: "n", Value: 7})
			So(logger.Int64("n64", int64(7)), ShouldResemble, logger.Field{Key: "n64", Value: int64(7)})
			So(logger.Float64("f", 2.5), ShouldResemble, logger.Field{Key: "f", Value: 2.5})
			So(logger.Any("a", true), ShouldResemble, logger.Field{Key: "a", Value: true})
			So(logger.Error(nil).Key, ShouldEqual, "error")
		})
	})
}
