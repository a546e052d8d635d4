// Package catalog holds the immutable game tables: crops, pets, reward
// tables, letter phrases and progression. Tables ship embedded in the binary
// and are schema-checked when loaded.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/validation"
)

// Table files, relative to the data and schema roots
const (
	CropsFile       = "crops.json"
	PetsFile        = "pets.json"
	RewardsFile     = "rewards.json"
	ProgressionFile = "progression.json"
)

//go:embed data/*.json
var embeddedData embed.FS

//go:embed schemas/*.json
var embeddedSchemas embed.FS

// Pet is a purchasable companion that earns coins while the player is away
type Pet struct {
	ID           string          `json:"id" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Emoji        string          `json:"emoji"`
	Price        decimal.Decimal `json:"price"`
	CoinsPerHour decimal.Decimal `json:"coinsPerHour"`
}

// CheckInReward is one row of the daily check-in table. Probabilities are
// per-row weights that sum to 1.
type CheckInReward struct {
	Coins       decimal.Decimal `json:"coins"`
	Probability float64         `json:"probability" validate:"gt=0,lte=1"`
}

// GachaPool is one row of the gacha table. Probability is cumulative: a roll
// r selects the first pool with r < Probability.
type GachaPool struct {
	Seeds       []string `json:"seeds" validate:"required,min=1"`
	Probability float64  `json:"probability" validate:"gt=0,lte=1"`
	MinQty      int64    `json:"minQty" validate:"gte=1"`
	MaxQty      int64    `json:"maxQty" validate:"gtefield=MinQty"`
}

// Phrase is a letter-collection target and the reward it redeems for
type Phrase struct {
	Text   string `json:"phrase" validate:"required"`
	Reward string `json:"reward" validate:"required"`
}

// Letters returns the distinct letters of the phrase, upper-cased, in first-seen order
func (p Phrase) Letters() []string {
	return distinctLetters(p.Text)
}

// PlotUnlock is the price of opening a locked plot
type PlotUnlock struct {
	Plot  int   `json:"plot"`
	Cost  int64 `json:"cost" validate:"gte=0"`
	Level int   `json:"level" validate:"gte=1"`
}

type cropsFile struct {
	Version string        `json:"version"`
	Crops   []domain.Crop `json:"crops" validate:"required,min=1,dive"`
}

type petsFile struct {
	Version string `json:"version"`
	Pets    []Pet  `json:"pets" validate:"required,min=1,dive"`
}

type rewardsFile struct {
	Version string          `json:"version"`
	CheckIn []CheckInReward `json:"checkIn" validate:"required,min=1,dive"`
	Gacha   []GachaPool     `json:"gacha" validate:"required,min=1,dive"`
	Phrases []Phrase        `json:"phrases" validate:"dive"`
}

type progressionFile struct {
	Version         string       `json:"version"`
	LevelThresholds []int64      `json:"levelThresholds" validate:"required,min=1"`
	PlotUnlocks     []PlotUnlock `json:"plotUnlocks" validate:"dive"`
	DefaultUnlock   PlotUnlock   `json:"defaultUnlock"`
}

// Catalog is read-only after Load and safe for concurrent use
type Catalog struct {
	crops     []domain.Crop
	cropIndex map[string]int
	pets      []Pet
	petIndex  map[string]int

	checkIn []CheckInReward
	gacha   []GachaPool
	phrases []Phrase
	letters []string

	levels        []int64
	unlocks       map[int]PlotUnlock
	defaultUnlock PlotUnlock
}

// Load reads the embedded tables
func Load() (*Catalog, error) {
	data, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded data: %w", err)
	}
	return LoadFS(data)
}

// MustLoad is Load for process start-up, where a broken table is fatal
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFS reads the tables from the root of data. Each file is checked
// against its embedded schema, decoded, then checked for cross-field rules.
func LoadFS(data fs.FS) (*Catalog, error) {
	schemas, err := fs.Sub(embeddedSchemas, "schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded schemas: %w", err)
	}
	l := &loader{
		data:     data,
		schema:   validation.NewSchemaValidator(schemas),
		validate: validator.New(),
	}

	var (
		crops   cropsFile
		pets    petsFile
		rewards rewardsFile
		prog    progressionFile
	)
	if err := l.read(CropsFile, &crops); err != nil {
		return nil, err
	}
	if err := l.read(PetsFile, &pets); err != nil {
		return nil, err
	}
	if err := l.read(RewardsFile, &rewards); err != nil {
		return nil, err
	}
	if err := l.read(ProgressionFile, &prog); err != nil {
		return nil, err
	}

	return build(crops, pets, rewards, prog)
}

type loader struct {
	data     fs.FS
	schema   validation.SchemaValidator
	validate *validator.Validate
}

func (l *loader) read(name string, out interface{}) error {
	raw, err := fs.ReadFile(l.data, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	schemaPath := strings.TrimSuffix(name, ".json") + ".schema.json"
	if err := l.schema.ValidateBytes(raw, schemaPath); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if err := l.validate.Struct(out); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}

func build(crops cropsFile, pets petsFile, rewards rewardsFile, prog progressionFile) (*Catalog, error) {
	c := &Catalog{
		crops:         crops.Crops,
		cropIndex:     make(map[string]int, len(crops.Crops)),
		pets:          pets.Pets,
		petIndex:      make(map[string]int, len(pets.Pets)),
		checkIn:       rewards.CheckIn,
		gacha:         rewards.Gacha,
		phrases:       rewards.Phrases,
		levels:        prog.LevelThresholds,
		unlocks:       make(map[int]PlotUnlock, len(prog.PlotUnlocks)),
		defaultUnlock: prog.DefaultUnlock,
	}

	for i, crop := range c.crops {
		if _, dup := c.cropIndex[crop.ID]; dup {
			return nil, fmt.Errorf("duplicate crop %q", crop.ID)
		}
		if crop.SproutAt() > crop.GrowingAt() || crop.GrowingAt() > crop.RipeAt() {
			return nil, fmt.Errorf("crop %q: stage thresholds must be non-decreasing, got %v", crop.ID, crop.Stages)
		}
		c.cropIndex[crop.ID] = i
	}

	for i, pet := range c.pets {
		if _, dup := c.petIndex[pet.ID]; dup {
			return nil, fmt.Errorf("duplicate pet %q", pet.ID)
		}
		if !pet.Price.IsPositive() || pet.CoinsPerHour.IsNegative() {
			return nil, fmt.Errorf("pet %q: price must be positive and earnings non-negative", pet.ID)
		}
		c.petIndex[pet.ID] = i
	}

	var total float64
	for _, r := range c.checkIn {
		total += r.Probability
	}
	if total < 0.999 || total > 1.001 {
		return nil, fmt.Errorf("check-in probabilities sum to %.4f, want 1", total)
	}

	prev := 0.0
	for i, pool := range c.gacha {
		if pool.Probability <= prev {
			return nil, fmt.Errorf("gacha pool %d: cumulative probability %.5f does not exceed %.5f", i, pool.Probability, prev)
		}
		prev = pool.Probability
		for _, seed := range pool.Seeds {
			if _, ok := c.cropIndex[seed]; !ok {
				return nil, fmt.Errorf("gacha pool %d: unknown crop %q", i, seed)
			}
		}
	}

	if !sort.SliceIsSorted(c.levels, func(i, j int) bool { return c.levels[i] < c.levels[j] }) || c.levels[0] != 0 {
		return nil, fmt.Errorf("level thresholds must start at 0 and increase")
	}
	for _, u := range prog.PlotUnlocks {
		c.unlocks[u.Plot] = u
	}

	seen := make(map[string]bool)
	for _, p := range c.phrases {
		for _, l := range p.Letters() {
			if !seen[l] {
				seen[l] = true
				c.letters = append(c.letters, l)
			}
		}
	}
	sort.Strings(c.letters)

	return c, nil
}

// Crop looks up a crop by id
func (c *Catalog) Crop(id string) (domain.Crop, bool) {
	i, ok := c.cropIndex[id]
	if !ok {
		return domain.Crop{}, false
	}
	return c.crops[i], true
}

// Indexed ids used by the legacy wire protocol: seed_0 .. seed_17 and
// fruit_0 .. fruit_17 in catalog order.
const (
	SeedPrefix  = "seed_"
	FruitPrefix = "fruit_"
)

// CropByBackendID resolves a crop id, seed_N or fruit_N to its crop
func (c *Catalog) CropByBackendID(id string) (domain.Crop, bool) {
	if crop, ok := c.Crop(id); ok {
		return crop, true
	}
	for _, prefix := range []string{SeedPrefix, FruitPrefix} {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil || n < 0 || n >= len(c.crops) {
			return domain.Crop{}, false
		}
		return c.crops[n], true
	}
	return domain.Crop{}, false
}

// SeedBackendID is the indexed seed id of cropID
func (c *Catalog) SeedBackendID(cropID string) (string, bool) {
	i, ok := c.cropIndex[cropID]
	if !ok {
		return "", false
	}
	return SeedPrefix + strconv.Itoa(i), true
}

// Crops returns every crop in catalog order
func (c *Catalog) Crops() []domain.Crop {
	out := make([]domain.Crop, len(c.crops))
	copy(out, c.crops)
	return out
}

// Pet looks up a pet by id
func (c *Catalog) Pet(id string) (Pet, bool) {
	i, ok := c.petIndex[id]
	if !ok {
		return Pet{}, false
	}
	return c.pets[i], true
}

// Pets returns every pet in catalog order
func (c *Catalog) Pets() []Pet {
	out := make([]Pet, len(c.pets))
	copy(out, c.pets)
	return out
}

// CheckInRewards returns the check-in table
func (c *Catalog) CheckInRewards() []CheckInReward {
	return append([]CheckInReward(nil), c.checkIn...)
}

// GachaPools returns the gacha table in cumulative order
func (c *Catalog) GachaPools() []GachaPool {
	return append([]GachaPool(nil), c.gacha...)
}

// Phrase returns the phrase at index
func (c *Catalog) Phrase(index int) (Phrase, bool) {
	if index < 0 || index >= len(c.phrases) {
		return Phrase{}, false
	}
	return c.phrases[index], true
}

// Phrases returns every phrase in catalog order
func (c *Catalog) Phrases() []Phrase {
	return append([]Phrase(nil), c.phrases...)
}

// DropLetters is the sorted set of letters that can drop on harvest
func (c *Catalog) DropLetters() []string {
	return append([]string(nil), c.letters...)
}

// LevelForExp maps experience to a level in [1, len(thresholds)]
func (c *Catalog) LevelForExp(exp int64) int {
	level := 1
	for i, threshold := range c.levels {
		if exp >= threshold {
			level = i + 1
		}
	}
	if level > domain.MaxLevel {
		level = domain.MaxLevel
	}
	return level
}

// PlotUnlock returns the price of opening plot. Plots without an explicit row
// use the default price.
func (c *Catalog) PlotUnlock(plot int) PlotUnlock {
	if u, ok := c.unlocks[plot]; ok {
		return u
	}
	u := c.defaultUnlock
	u.Plot = plot
	return u
}

// NormalizeLetter upper-cases a single letter so inventory keys are consistent
func NormalizeLetter(letter string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(letter))
}

func distinctLetters(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range cases.Upper(language.Und).String(text) {
		if !unicode.IsLetter(r) {
			continue
		}
		l := string(r)
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}
