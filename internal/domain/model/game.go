// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an integer identifier that game data files encode either as a JSON
// number or as a digit string.
type ID int64

// UnmarshalJSON accepts both encodings.
func (id *ID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if serr := json.Unmarshal(data, &s); serr != nil {
			return fmt.Errorf("invalid id %s: %w", data, err)
		}
		n = json.Number(s)
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", n.String(), err)
	}
	*id = ID(v)
	return nil
}

// MarshalJSON writes the identifier as a JSON number.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(id), 10)), nil
}

// UserResult is one participant's entry in a game record.
type UserResult struct {
	Username     string  `json:"username"`
	UserID       ID      `json:"userID"`
	Rank         int     `json:"rank"` // 1-based finish, lower is better, ties allowed
	ErrorLogName *string `json:"errorLogName,omitempty"`
	WorkerID     *ID     `json:"workerID,omitempty"`
}

// GameRecord is one free-for-all game as loaded from disk. Records are
// immutable after load.
type GameRecord struct {
	GameID   ID           `json:"gameID"`
	WorkerID *ID          `json:"workerID,omitempty"`
	Users    []UserResult `json:"users"`
}

// PlayerKey builds the corpus-wide player identifier for a participant.
func PlayerKey(username string, userID ID) string {
	return fmt.Sprintf("%s (%d)", username, userID)
}

// Result is the view of a game the rating systems consume: player key to
// 1-based finishing rank.
type Result map[string]int

// Result converts the record, dropping any participants whose username is
// in exclude. Callers that exclude players must discard games left with
// fewer than two participants.
func (g GameRecord) Result(exclude map[string]bool) Result {
	r := make(Result, len(g.Users))
	for _, u := range g.Users {
		if exclude[u.Username] {
			continue
		}
		r[PlayerKey(u.Username, u.UserID)] = u.Rank
	}
	return r
}

// HasError reports whether any participant produced an error log.
func (g GameRecord) HasError() bool {
	for _, u := range g.Users {
		if u.ErrorLogName != nil {
			return true
		}
	}
	return false
}

// Players returns the participants of a result in unspecified order.
func (r Result) Players() []string {
	players := make([]string, 0, len(r))
	for p := range r {
		players = append(players, p)
	}
	return players
}

// WorstRank returns the numerically largest rank in the result.
func (r Result) WorstRank() int {
	worst := 0
	for _, rank := range r {
		if rank > worst {
			worst = rank
		}
	}
	return worst
}

// BestRank returns the numerically smallest rank in the result.
func (r Result) BestRank() int {
	best := 0
	for _, rank := range r {
		if best == 0 || rank < best {
			best = rank
		}
	}
	return best
}

// Results converts a slice of records in order, with no exclusions.
func Results(games []GameRecord) []Result {
	out := make([]Result, 0, len(games))
	for _, g := range games {
		out = append(out, g.Result(nil))
	}
	return out
}
