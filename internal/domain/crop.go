package domain

// Crop is an immutable catalog entry. Stages holds the cumulative effective
// elapsed seconds at which the crop enters SPROUT, GROWING and RIPE.
type Crop struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Emoji       string   `json:"emoji"`
	SeedCost    int64    `json:"seedCost" validate:"gt=0"`
	SellPrice   int64    `json:"sellPrice" validate:"gt=0"`
	Exp         int64    `json:"exp" validate:"gte=0"`
	Stages      [3]int64 `json:"stages"`
	WitherAfter int64    `json:"witherAfter" validate:"gte=0"`
	LevelReq    int      `json:"levelReq" validate:"gte=1,lte=18"`
}

// SproutAt is t1
func (c Crop) SproutAt() int64 { return c.Stages[0] }

// GrowingAt is t2
func (c Crop) GrowingAt() int64 { return c.Stages[1] }

// RipeAt is t3
func (c Crop) RipeAt() int64 { return c.Stages[2] }

// WitherAt is the effective elapsed time at which a ripe crop rots
func (c Crop) WitherAt() int64 { return c.Stages[2] + c.WitherAfter }

// YieldPerHarvest is fixed: one harvest always produces one fruit.
const YieldPerHarvest = 1
