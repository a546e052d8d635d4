package growth

import (
	"sort"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/utils"
)

// WaterCount is the number of watering requirements for a crop of level
func WaterCount(level int) int {
	return lookupBand(waterBands, level)
}

// WeedCount is the number of weeding requirements for a crop of level
func WeedCount(level int) int {
	return lookupBand(weedBands, level)
}

// FertilizerFactor is the reduction factor applied to a crop of level
func FertilizerFactor(level int) Factor {
	level = utils.ClampInt(level, 1, domain.MaxLevel)
	for _, b := range fertilizerBands {
		if level <= b.maxLevel {
			return b.factor
		}
	}
	return fertilizerBands[len(fertilizerBands)-1].factor
}

func lookupBand(bands []band, level int) int {
	level = utils.ClampInt(level, 1, domain.MaxLevel)
	for _, b := range bands {
		if level <= b.maxLevel {
			return b.value
		}
	}
	return bands[len(bands)-1].value
}

// GenerateRequirements draws count trigger times uniformly from [0, t3) and
// returns them sorted ascending
func GenerateRequirements(rng utils.Roller, crop domain.Crop, count int) []domain.Requirement {
	reqs := make([]domain.Requirement, 0, count)
	t3 := crop.RipeAt()
	for i := 0; i < count; i++ {
		var trigger int64
		if t3 > 0 {
			trigger = rng.Int63n(t3)
		}
		reqs = append(reqs, domain.Requirement{TriggerTime: trigger})
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].TriggerTime < reqs[j].TriggerTime
	})
	return reqs
}
