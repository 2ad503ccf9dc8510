package plackett_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ratelab/internal/domain/model"
	"github.com/okian/ratelab/internal/domain/plackett"
)

func TestCheckConnectivity(t *testing.T) {
	Convey("Given a corpus where one player never loses and one never wins", t, func() {
		games := []model.Result{
			{"A": 1, "B": 2, "D": 3},
			{"A": 1, "C": 2},
			{"B": 1, "C": 2, "D": 3},
			{"C": 1, "B": 2, "D": 3},
		}

		Convey("When checking connectivity", func() {
			undefeated, winless := plackett.CheckConnectivity(games)

			Convey("Then both degenerate sets are reported in order", func() {
				So(undefeated, ShouldResemble, []string{"A"})
				So(winless, ShouldResemble, []string{"D"})
			})
		})
	})

	Convey("Given a corpus where every player wins and loses", t, func() {
		games := []model.Result{
			{"A": 1, "B": 2},
			{"B": 1, "C": 2},
			{"C": 1, "A": 2},
		}

		Convey("When checking connectivity", func() {
			undefeated, winless := plackett.CheckConnectivity(games)

			Convey("Then both sets are empty", func() {
				So(undefeated, ShouldBeEmpty)
				So(winless, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a player whose only game is a full tie", t, func() {
		games := []model.Result{
			{"A": 1, "B": 1},
			{"A": 1, "C": 2},
			{"C": 1, "A": 2},
		}

		Convey("When checking connectivity", func() {
			undefeated, winless := plackett.CheckConnectivity(games)

			Convey("Then the tie counts as neither a win nor a loss", func() {
				So(undefeated, ShouldContain, "B")
				So(winless, ShouldContain, "B")
			})
		})
	})
}
