package growth

import "github.com/osse101/ZetaFarm_Go/internal/domain"

// band maps an inclusive upper crop level to a value
type band struct {
	maxLevel int
	value    int
}

// Requirement counts by crop level. These are game-balance constants and
// must not drift from the published tables.
var (
	waterBands = []band{{3, 1}, {6, 2}, {9, 3}, {13, 4}, {domain.MaxLevel, 5}}
	weedBands  = []band{{3, 0}, {6, 1}, {9, 2}, {12, 3}, {15, 4}, {domain.MaxLevel, 5}}
)

// Factor is a rational fertilizer reduction factor. A zero numerator means
// the crop ripens instantly.
type Factor struct {
	Num int64
	Den int64
}

// IsInstant reports whether the factor jumps the crop straight to RIPE
func (f Factor) IsInstant() bool {
	return f.Num == 0
}

type factorBand struct {
	maxLevel int
	factor   Factor
}

var fertilizerBands = []factorBand{
	{3, Factor{0, 1}},
	{6, Factor{1, 2}},
	{9, Factor{2, 3}},
	{12, Factor{5, 6}},
	{domain.MaxLevel, Factor{23, 24}},
}
