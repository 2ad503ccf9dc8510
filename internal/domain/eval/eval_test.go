package eval_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ratelab/internal/domain/eval"
	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/internal/domain/rating"
)

func TestEvaluator_OrderError(t *testing.T) {
	Convey("Given a table that perfectly orders a three-player game", t, func() {
		table := rating.NewStrengthTable(map[string]float64{"A": 3, "B": 2, "C": 1})
		games := []model.Result{{"A": 1, "B": 2, "C": 3}}

		Convey("When computing the order error", func() {
			stats := eval.New().OrderError(context.Background(), games, table)

			Convey("Then every pair is scored and none is wrong", func() {
				So(stats.Pairs, ShouldEqual, 3)
				So(stats.Missed, ShouldEqual, 0)
				So(stats.Value, ShouldEqual, 0)
			})
		})
	})

	Convey("Given two players with identical strengths", t, func() {
		table := rating.NewStrengthTable(map[string]float64{"A": 1, "B": 1})
		games := []model.Result{{"A": 1, "B": 2}}

		Convey("When computing the order error", func() {
			stats := eval.New().OrderError(context.Background(), games, table)

			Convey("Then the indecisive pair counts as wrong", func() {
				So(stats.Pairs, ShouldEqual, 1)
				So(stats.Value, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a table that inverts the true order", t, func() {
		table := rating.NewStrengthTable(map[string]float64{"A": 1, "B": 2})
		games := []model.Result{{"A": 1, "B": 2}}

		Convey("When computing the order error", func() {
			stats := eval.New().OrderError(context.Background(), games, table)

			Convey("Then the pair is wrong", func() {
				So(stats.Value, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a game with an unrated participant", t, func() {
		table := rating.NewStrengthTable(map[string]float64{"A": 2, "B": 1})
		games := []model.Result{
			{"A": 1, "B": 2},
			{"A": 1, "C": 2},
		}

		Convey("When computing the order error", func() {
			stats := eval.New().OrderError(context.Background(), games, table)

			Convey("Then the unrated pair is excluded, not counted wrong", func() {
				So(stats.Pairs, ShouldEqual, 1)
				So(stats.Missed, ShouldEqual, 1)
				So(stats.Value, ShouldEqual, 0)
			})
		})
	})

	Convey("Given games where no pair can be scored", t, func() {
		table := rating.NewStrengthTable(map[string]float64{})
		games := []model.Result{{"A": 1, "B": 2}}

		Convey("When computing the order error", func() {
			stats := eval.New().OrderError(context.Background(), games, table)

			Convey("Then the value is zero with everything reported missed", func() {
				So(stats.Pairs, ShouldEqual, 0)
				So(stats.Missed, ShouldEqual, 1)
				So(stats.Value, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a tie in the observed game", t, func() {
		table := rating.NewStrengthTable(map[string]float64{"A": 2, "B": 1})
		games := []model.Result{{"A": 1, "B": 1}}

		Convey("When computing the order error", func() {
			stats := eval.New().OrderError(context.Background(), games, table)

			Convey("Then a decisive prediction of a tied pair is wrong", func() {
				So(stats.Pairs, ShouldEqual, 1)
				So(stats.Value, ShouldEqual, 1)
			})
		})
	})
}

func TestEvaluator_RMSE(t *testing.T) {
	Convey("Given strengths 3 and 1", t, func() {
		table := rating.NewStrengthTable(map[string]float64{"A": 3, "B": 1})

		Convey("When the favorite wins", func() {
			stats := eval.New().RMSE(context.Background(),
				[]model.Result{{"A": 1, "B": 2}}, table)

			Convey("Then the error is one minus the predicted 0.75", func() {
				So(stats.Pairs, ShouldEqual, 1)
				So(stats.Value, ShouldAlmostEqual, 0.25, 1e-12)
			})
		})

		Convey("When the favorite loses", func() {
			stats := eval.New().RMSE(context.Background(),
				[]model.Result{{"B": 1, "A": 2}}, table)

			Convey("Then the error is the full predicted 0.75", func() {
				So(stats.Value, ShouldAlmostEqual, 0.75, 1e-12)
			})
		})
	})

	Convey("Given equal strengths and a tied game", t, func() {
		table := rating.NewStrengthTable(map[string]float64{"A": 1, "B": 1})
		stats := eval.New().RMSE(context.Background(),
			[]model.Result{{"A": 1, "B": 1}}, table)

		Convey("Then the tie scores against the 0.5 prediction as a loss", func() {
			So(stats.Value, ShouldAlmostEqual, 0.5, 1e-12)
		})
	})

	Convey("Given an unrated participant", t, func() {
		table := rating.NewStrengthTable(map[string]float64{"A": 1})
		stats := eval.New().RMSE(context.Background(),
			[]model.Result{{"A": 1, "B": 2}}, table)

		Convey("Then the pair is skipped and the value is zero", func() {
			So(stats.Pairs, ShouldEqual, 0)
			So(stats.Missed, ShouldEqual, 1)
			So(stats.Value, ShouldEqual, 0)
		})
	})

	Convey("Given a multi-game corpus", t, func() {
		table := rating.NewStrengthTable(map[string]float64{"A": 3, "B": 1})
		games := []model.Result{
			{"A": 1, "B": 2},
			{"B": 1, "A": 2},
		}

		Convey("When computing the RMSE", func() {
			stats := eval.New().RMSE(context.Background(), games, table)

			Convey("Then errors average across all scored pairs", func() {
				So(stats.Pairs, ShouldEqual, 2)
				// sqrt((0.25^2 + 0.75^2) / 2)
				So(stats.Value, ShouldAlmostEqual, 0.5590169943749475, 1e-12)
			})
		})
	})
}
