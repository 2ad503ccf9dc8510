package wenglin_test

import (
	"context"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/internal/domain/rating"
	"github.com/okian/ratelab/internal/domain/wenglin"
)

func repeatedSweep(n int) []model.Result {
	games := make([]model.Result, 0, n)
	for i := 0; i < n; i++ {
		games = append(games, model.Result{"A": 1, "B": 2, "C": 3})
	}
	return games
}

func belief(t rating.Table, player string) rating.Gaussian {
	g, ok := t.(*rating.GaussianTable).Rating(player)
	So(ok, ShouldBeTrue)
	return g
}

func TestUpdater_Train(t *testing.T) {
	for name, build := range map[string]func(...wenglin.Option) *wenglin.Updater{
		"bradley-terry": wenglin.NewBradleyTerry,
		"plackett-luce": wenglin.NewPlackettLuce,
	} {
		build := build

		Convey("Given the "+name+" rule and a repeated three-player sweep", t, func() {
			games := repeatedSweep(50)

			Convey("When training", func() {
				table, err := build().Train(context.Background(), games)
				So(err, ShouldBeNil)

				Convey("Then means order the players by finish", func() {
					a := belief(table, "A")
					b := belief(table, "B")
					c := belief(table, "C")
					So(a.Mu, ShouldBeGreaterThan, b.Mu)
					So(b.Mu, ShouldBeGreaterThan, c.Mu)
				})

				Convey("And every belief tightened below the prior but stayed positive", func() {
					for _, p := range table.Players() {
						g := belief(table, p)
						So(g.Sigma, ShouldBeLessThan, wenglin.DefaultSigma)
						So(g.Sigma, ShouldBeGreaterThan, 0)
					}
				})
			})

			Convey("When training twice on the same corpus", func() {
				first, err := build().Train(context.Background(), games)
				So(err, ShouldBeNil)
				second, err := build().Train(context.Background(), games)
				So(err, ShouldBeNil)

				Convey("Then the tables are bit-for-bit identical", func() {
					So(second.Players(), ShouldResemble, first.Players())
					for _, p := range first.Players() {
						So(belief(second, p).Mu, ShouldEqual, belief(first, p).Mu)
						So(belief(second, p).Sigma, ShouldEqual, belief(first, p).Sigma)
					}
				})
			})
		})

		Convey("Given the "+name+" rule and a single two-player game", t, func() {
			games := []model.Result{{"A": 1, "B": 2}}

			Convey("When training", func() {
				table, err := build().Train(context.Background(), games)
				So(err, ShouldBeNil)

				Convey("Then the winner moves up and the loser down from the prior", func() {
					a := belief(table, "A")
					b := belief(table, "B")
					So(a.Mu, ShouldBeGreaterThan, wenglin.DefaultMu)
					So(b.Mu, ShouldBeLessThan, wenglin.DefaultMu)
					So(a.Sigma, ShouldBeLessThan, wenglin.DefaultSigma)
					So(b.Sigma, ShouldBeLessThan, wenglin.DefaultSigma)
				})
			})
		})

		Convey("Given the "+name+" rule and the same games in a different order", t, func() {
			forward := []model.Result{
				{"A": 1, "B": 2},
				{"B": 1, "C": 2},
				{"C": 1, "A": 2},
			}
			backward := []model.Result{forward[2], forward[1], forward[0]}

			Convey("When training on both orderings", func() {
				ft, err := build().Train(context.Background(), forward)
				So(err, ShouldBeNil)
				bt, err := build().Train(context.Background(), backward)
				So(err, ShouldBeNil)

				Convey("Then the resulting beliefs differ", func() {
					So(math.Abs(belief(ft, "A").Mu-belief(bt, "A").Mu), ShouldBeGreaterThan, 1e-9)
				})
			})
		})
	}

	Convey("Given explicit initial beliefs", t, func() {
		initial := map[string]rating.Gaussian{
			"A": {Mu: 40, Sigma: 0.5},
		}
		games := []model.Result{{"A": 2, "B": 1}}

		Convey("When training with the initial state supplied", func() {
			table, err := wenglin.NewBradleyTerry(wenglin.WithInitial(initial)).
				Train(context.Background(), games)
			So(err, ShouldBeNil)

			Convey("Then a confident initial belief barely moves from one loss", func() {
				a := belief(table, "A")
				So(a.Mu, ShouldBeGreaterThan, 35)
				b := belief(table, "B")
				So(b.Mu, ShouldBeGreaterThan, wenglin.DefaultMu)
			})

			Convey("And the caller's map is not mutated", func() {
				So(initial["A"].Mu, ShouldEqual, 40)
				So(initial["A"].Sigma, ShouldEqual, 0.5)
			})
		})
	})

	Convey("Given a long one-sided corpus", t, func() {
		games := make([]model.Result, 0, 500)
		for i := 0; i < 500; i++ {
			games = append(games, model.Result{"A": 1, "B": 2})
		}

		Convey("When training with either rule", func() {
			for _, u := range []*wenglin.Updater{wenglin.NewBradleyTerry(), wenglin.NewPlackettLuce()} {
				table, err := u.Train(context.Background(), games)
				So(err, ShouldBeNil)

				Convey("Then sigma stays strictly positive under "+u.Name(), func() {
					for _, p := range table.Players() {
						So(belief(table, p).Sigma, ShouldBeGreaterThan, 0)
					}
				})
			}
		})
	})

	Convey("Given a progress callback", t, func() {
		var calls []int
		games := repeatedSweep(25)

		Convey("When training with reporting every ten games", func() {
			_, err := wenglin.NewPlackettLuce(
				wenglin.WithProgress(10, func(rated int) { calls = append(calls, rated) }),
			).Train(context.Background(), games)

			Convey("Then the callback fires at each multiple", func() {
				So(err, ShouldBeNil)
				So(calls, ShouldResemble, []int{10, 20})
			})
		})
	})

	Convey("Given tied ranks under the pooled rule", t, func() {
		games := []model.Result{
			{"A": 1, "B": 1, "C": 2},
			{"C": 1, "A": 2, "B": 2},
		}

		Convey("When training", func() {
			table, err := wenglin.NewPlackettLuce().Train(context.Background(), games)

			Convey("Then tied players receive symmetric treatment", func() {
				So(err, ShouldBeNil)
				a := belief(table, "A")
				b := belief(table, "B")
				So(a.Mu, ShouldAlmostEqual, b.Mu, 1e-12)
				So(a.Sigma, ShouldAlmostEqual, b.Sigma, 1e-12)
			})
		})
	})
}

func TestUpdater_Table(t *testing.T) {
	Convey("Given a trained updater", t, func() {
		table, err := wenglin.NewBradleyTerry().
			Train(context.Background(), repeatedSweep(10))
		So(err, ShouldBeNil)

		Convey("Then the table uses the logistic link", func() {
			So(table.Kind(), ShouldEqual, rating.KindLogistic)
		})

		Convey("And the stronger player is favored", func() {
			So(table.WinProb("A", "C"), ShouldBeGreaterThan, 0.5)
			So(table.Better("A", "C"), ShouldBeTrue)
		})
	})
}
