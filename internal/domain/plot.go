package domain

// Stage is a growth phase derived from effective elapsed time. It is never persisted.
type Stage string

// Growth stages in lifecycle order. StageError marks a plot whose crop
// is missing from the catalog.
const (
	StageEmpty   Stage = "EMPTY"
	StageSeed    Stage = "SEED"
	StageSprout  Stage = "SPROUT"
	StageGrowing Stage = "GROWING"
	StageRipe    Stage = "RIPE"
	StageWither  Stage = "WITHER"
	StageError   Stage = "ERROR"
)

// Requirement is a scheduled watering or weeding obligation. TriggerTime is
// measured in effective elapsed seconds from planting.
type Requirement struct {
	TriggerTime int64  `json:"time"`
	Done        bool   `json:"done"`
	DoneAt      *int64 `json:"doneAt,omitempty"`
}

// IsDue reports whether the requirement is unmet and overdue at effective elapsed e
func (r Requirement) IsDue(e int64) bool {
	return !r.Done && e >= r.TriggerTime
}

// Plot is one farmable slot. CropID == "" means the plot is empty and every
// other crop field is zero.
type Plot struct {
	ID                int           `json:"id"`
	Unlocked          bool          `json:"unlocked"`
	CropID            string        `json:"cropId,omitempty"`
	PlantedAt         int64         `json:"plantedAt,omitempty"`
	PausedDuration    int64         `json:"pausedDuration"`
	PausedAt          *int64        `json:"pausedAt,omitempty"`
	Fertilized        bool          `json:"fertilized"`
	Pests             bool          `json:"pests"`
	HasWeeds          bool          `json:"hasWeeds"`
	WaterRequirements []Requirement `json:"waterRequirements"`
	WeedRequirements  []Requirement `json:"weedRequirements"`
}

// IsPlanted reports whether a crop occupies the plot
func (p *Plot) IsPlanted() bool {
	return p.CropID != ""
}

// IsPaused reports whether a pause interval is open
func (p *Plot) IsPaused() bool {
	return p.PausedAt != nil
}

// Clear returns the plot to empty. The slot and its unlocked flag survive.
func (p *Plot) Clear() {
	*p = Plot{
		ID:                p.ID,
		Unlocked:          p.Unlocked,
		WaterRequirements: []Requirement{},
		WeedRequirements:  []Requirement{},
	}
}

// Clone deep-copies the plot
func (p Plot) Clone() Plot {
	out := p
	if p.PausedAt != nil {
		v := *p.PausedAt
		out.PausedAt = &v
	}
	out.WaterRequirements = cloneRequirements(p.WaterRequirements)
	out.WeedRequirements = cloneRequirements(p.WeedRequirements)
	return out
}

func cloneRequirements(in []Requirement) []Requirement {
	if in == nil {
		return nil
	}
	out := make([]Requirement, len(in))
	for i, r := range in {
		out[i] = r
		if r.DoneAt != nil {
			v := *r.DoneAt
			out[i].DoneAt = &v
		}
	}
	return out
}

// NewPlots builds the plot row for a fresh farm with the first unlocked plots open
func NewPlots(unlocked int) []Plot {
	plots := make([]Plot, PlotCount)
	for i := range plots {
		plots[i] = Plot{
			ID:                i,
			Unlocked:          i < unlocked,
			WaterRequirements: []Requirement{},
			WeedRequirements:  []Requirement{},
		}
	}
	return plots
}
