// Package rating defines the rating table representations shared by all
// rating systems, with the prediction capabilities each system supports
// attached at construction time.
package rating

import (
	"math"
	"sort"
)

// Kind tags a table with its representation and prediction link. The kind
// is fixed when the table is built and is never inferred from serialized
// output shape.
type Kind string

const (
	// KindStrength is a single positive strength per player (Plackett-Luce
	// gamma); only ratios between players are meaningful.
	KindStrength Kind = "strength"
	// KindLogistic is a Gaussian belief with a logistic win-probability
	// link (Weng-Lin).
	KindLogistic Kind = "logistic"
	// KindNormal is a Gaussian belief with a normal-CDF win-probability
	// link (delegated baseline systems).
	KindNormal Kind = "normal"
)

// Gaussian is a belief over one player's skill.
type Gaussian struct {
	Mu    float64
	Sigma float64
}

// Score is the conservative lower-bound skill estimate used for ranking
// and display.
func (g Gaussian) Score() float64 {
	return g.Mu - 3*g.Sigma
}

// Table is a frozen player-to-rating mapping together with the prediction
// capabilities the evaluator needs. Implementations must treat the table
// as read-only once handed to an evaluator.
type Table interface {
	Kind() Kind
	// Has reports whether the player was rated.
	Has(player string) bool
	// WinProb predicts the probability that a beats b. Both players must
	// be present.
	WinProb(a, b string) float64
	// Better is the decisive-order predicate: whether a's rating orders
	// strictly ahead of b's. It may be false in both directions.
	Better(a, b string) bool
	// Score is the display/ranking score for a rated player.
	Score(player string) float64
	// Players returns the rated players in lexical order.
	Players() []string
	Len() int
}

// StrengthTable maps players to unnormalized Plackett-Luce strengths.
type StrengthTable struct {
	gammas map[string]float64
}

// NewStrengthTable builds a strength table. The map is owned by the table
// afterwards.
func NewStrengthTable(gammas map[string]float64) *StrengthTable {
	return &StrengthTable{gammas: gammas}
}

func (t *StrengthTable) Kind() Kind { return KindStrength }

func (t *StrengthTable) Has(player string) bool {
	_, ok := t.gammas[player]
	return ok
}

// Gamma returns the raw strength for a player.
func (t *StrengthTable) Gamma(player string) (float64, bool) {
	g, ok := t.gammas[player]
	return g, ok
}

// WinProb is the Bradley-Terry ratio ga/(ga+gb).
func (t *StrengthTable) WinProb(a, b string) float64 {
	ga := t.gammas[a]
	gb := t.gammas[b]
	return ga / (ga + gb)
}

func (t *StrengthTable) Better(a, b string) bool {
	return t.gammas[a] > t.gammas[b]
}

func (t *StrengthTable) Score(player string) float64 {
	return t.gammas[player]
}

func (t *StrengthTable) Players() []string {
	return sortedKeys(t.gammas)
}

func (t *StrengthTable) Len() int { return len(t.gammas) }

// Delete removes a player from the table. Used to strip synthetic anchor
// players before the table is frozen.
func (t *StrengthTable) Delete(player string) {
	delete(t.gammas, player)
}

// Normalize returns a copy scaled so the strengths sum to one. Only ratios
// are meaningful, so this is pure presentation and is owned by the caller,
// not the estimator.
func (t *StrengthTable) Normalize() *StrengthTable {
	var sum float64
	for _, g := range t.gammas {
		sum += g
	}
	out := make(map[string]float64, len(t.gammas))
	for p, g := range t.gammas {
		if sum > 0 {
			out[p] = g / sum
		} else {
			out[p] = g
		}
	}
	return NewStrengthTable(out)
}

// GaussianTable maps players to (mu, sigma) beliefs. The win-probability
// link is chosen at construction.
type GaussianTable struct {
	kind    Kind
	beta    float64
	ratings map[string]Gaussian
}

// NewLogisticTable builds a Gaussian table with the Weng-Lin logistic link.
// beta is the fixed performance-variance constant of the producing system.
func NewLogisticTable(ratings map[string]Gaussian, beta float64) *GaussianTable {
	return &GaussianTable{kind: KindLogistic, beta: beta, ratings: ratings}
}

// NewNormalTable builds a Gaussian table with a normal-CDF link and zero
// draw margin.
func NewNormalTable(ratings map[string]Gaussian, beta float64) *GaussianTable {
	return &GaussianTable{kind: KindNormal, beta: beta, ratings: ratings}
}

func (t *GaussianTable) Kind() Kind { return t.kind }

func (t *GaussianTable) Has(player string) bool {
	_, ok := t.ratings[player]
	return ok
}

// Rating returns the belief for a player.
func (t *GaussianTable) Rating(player string) (Gaussian, bool) {
	g, ok := t.ratings[player]
	return g, ok
}

// WinProb predicts a beating b through the table's link on the combined
// comparison scale sqrt(sa^2 + sb^2 + 2*beta^2).
func (t *GaussianTable) WinProb(a, b string) float64 {
	ra := t.ratings[a]
	rb := t.ratings[b]
	c := math.Sqrt(ra.Sigma*ra.Sigma + rb.Sigma*rb.Sigma + 2*t.beta*t.beta)
	if t.kind == KindNormal {
		return normCDF((ra.Mu - rb.Mu) / c)
	}
	return 1 / (1 + math.Exp((rb.Mu-ra.Mu)/c))
}

func (t *GaussianTable) Better(a, b string) bool {
	return t.ratings[a].Score() > t.ratings[b].Score()
}

func (t *GaussianTable) Score(player string) float64 {
	return t.ratings[player].Score()
}

func (t *GaussianTable) Players() []string {
	return sortedKeys(t.ratings)
}

func (t *GaussianTable) Len() int { return len(t.ratings) }

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return (1 + math.Erf(x/math.Sqrt2)) / 2
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
