package rating

import (
	"context"

	"github.com/okian/ratelab/internal/domain/model"
)

// System is a named rating method. Train builds a fresh table from a game
// sequence; implementations must not share mutable state between calls.
type System interface {
	Name() string
	Train(ctx context.Context, games []model.Result) (Table, error)
}
