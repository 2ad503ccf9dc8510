package model_test

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ratelab/internal/domain/model"
)

func TestID_JSON(t *testing.T) {
	Convey("Given game records with mixed id encodings", t, func() {
		payload := []byte(`[
			{"gameID": 7, "users": [{"username": "ada", "userID": "12", "rank": 1}]},
			{"gameID": "8", "workerID": 150, "users": [{"username": "bob", "userID": 13, "rank": 1}]}
		]`)

		Convey("When unmarshaling", func() {
			var games []model.GameRecord
			err := json.Unmarshal(payload, &games)

			Convey("Then numbers and digit strings both parse", func() {
				So(err, ShouldBeNil)
				So(games[0].GameID, ShouldEqual, model.ID(7))
				So(games[0].Users[0].UserID, ShouldEqual, model.ID(12))
				So(games[1].GameID, ShouldEqual, model.ID(8))
				So(*games[1].WorkerID, ShouldEqual, model.ID(150))
			})
		})

		Convey("When marshaling back", func() {
			var games []model.GameRecord
			So(json.Unmarshal(payload, &games), ShouldBeNil)
			out, err := json.Marshal(games[1])

			Convey("Then ids are written as numbers", func() {
				So(err, ShouldBeNil)
				So(string(out), ShouldContainSubstring, `"gameID":8`)
				So(string(out), ShouldContainSubstring, `"workerID":150`)
			})
		})
	})

	Convey("Given a non-numeric id", t, func() {
		var id model.ID

		Convey("When unmarshaling", func() {
			err := json.Unmarshal([]byte(`"abc"`), &id)

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestGameRecord(t *testing.T) {
	errLog := "crash-42.log"
	record := model.GameRecord{
		GameID: 1,
		Users: []model.UserResult{
			{Username: "ada", UserID: 1, Rank: 1},
			{Username: "bob", UserID: 2, Rank: 2, ErrorLogName: &errLog},
			{Username: "cyd", UserID: 3, Rank: 2},
		},
	}

	Convey("Given a record with an error log", t, func() {
		Convey("Then HasError reports it", func() {
			So(record.HasError(), ShouldBeTrue)
		})

		Convey("And a clean record does not", func() {
			clean := model.GameRecord{Users: []model.UserResult{{Username: "ada", UserID: 1, Rank: 1}}}
			So(clean.HasError(), ShouldBeFalse)
		})
	})

	Convey("Given the record converted to a result", t, func() {
		Convey("When converting without exclusions", func() {
			r := record.Result(nil)

			Convey("Then players are keyed by name and id", func() {
				So(r, ShouldResemble, model.Result{
					"ada (1)": 1,
					"bob (2)": 2,
					"cyd (3)": 2,
				})
			})
		})

		Convey("When converting with an exclusion", func() {
			r := record.Result(map[string]bool{"bob": true})

			Convey("Then the excluded player is dropped", func() {
				So(r, ShouldHaveLength, 2)
				So(r, ShouldNotContainKey, "bob (2)")
			})
		})
	})
}

func TestResult(t *testing.T) {
	Convey("Given a result with tied ranks", t, func() {
		r := model.Result{"ada (1)": 1, "bob (2)": 3, "cyd (3)": 3}

		Convey("Then rank extremes and players are reported", func() {
			So(r.BestRank(), ShouldEqual, 1)
			So(r.WorstRank(), ShouldEqual, 3)
			So(r.Players(), ShouldHaveLength, 3)
		})
	})

	Convey("Given a slice of records", t, func() {
		games := []model.GameRecord{
			{GameID: 1, Users: []model.UserResult{
				{Username: "ada", UserID: 1, Rank: 1},
				{Username: "bob", UserID: 2, Rank: 2},
			}},
			{GameID: 2, Users: []model.UserResult{
				{Username: "bob", UserID: 2, Rank: 1},
				{Username: "ada", UserID: 1, Rank: 2},
			}},
		}

		Convey("When converting them all", func() {
			results := model.Results(games)

			Convey("Then order and contents are preserved", func() {
				So(results, ShouldHaveLength, 2)
				So(results[0]["ada (1)"], ShouldEqual, 1)
				So(results[1]["ada (1)"], ShouldEqual, 2)
			})
		})
	})
}
