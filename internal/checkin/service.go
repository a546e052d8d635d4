// Package checkin pays a random coin reward once per UTC day.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/metrics"
	"github.com/osse101/ZetaFarm_Go/internal/store"
	"github.com/osse101/ZetaFarm_Go/internal/utils"
)

// Log messages
const (
	LogMsgCheckInRejected = "Check-in rejected"
	LogMsgCheckInFailed   = "Check-in failed"
)

// Date layouts for the check-in keys
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// KindCheckIn labels check-in reward events
const KindCheckIn = "checkin"

// Catalog supplies the reward table
type Catalog interface {
	CheckInRewards() []catalog.CheckInReward
}

// Service defines the check-in operations
type Service interface {
	CheckIn(ctx context.Context, address string) (*Result, error)
	History(ctx context.Context, address, month string) (*History, error)
}

// Result is a completed check-in
type Result struct {
	Date    string          `json:"date"`
	Reward  decimal.Decimal `json:"reward"`
	Coins   decimal.Decimal `json:"coins"`
	Streak  int             `json:"streak"`
	Checked []int           `json:"checkedDays"`
}

// History lists the days of a month the player checked in
type History struct {
	Month        string `json:"month"`
	Days         []int  `json:"days"`
	CheckedToday bool   `json:"checkedToday"`
}

type service struct {
	store     *store.Store
	catalog   Catalog
	clock     clock.Clock
	rng       utils.Roller
	publisher event.Publisher
}

// NewService creates a new check-in service
func NewService(st *store.Store, cat Catalog, clk clock.Clock, rng utils.Roller, publisher event.Publisher) Service {
	return &service{
		store:     st,
		catalog:   cat,
		clock:     clk,
		rng:       rng,
		publisher: publisher,
	}
}

// CheckIn credits today's reward
func (s *service) CheckIn(ctx context.Context, address string) (*Result, error) {
	now := clock.Time(s.clock)
	today := now.Format(DayLayout)
	month := now.Format(MonthLayout)

	result := &Result{Date: today}
	_, err := s.store.Update(ctx, address, func(f *domain.Farm) error {
		if f.LastCheckIn == today {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyCheckedIn, today)
		}
		reward := s.roll()
		f.AddCoins(reward)
		if f.CheckIns == nil {
			f.CheckIns = map[string][]int{}
		}
		f.CheckIns[month] = append(f.CheckIns[month], now.Day())
		f.LastCheckIn = today
		f.UpdatedAt = now.Unix()

		result.Reward, result.Coins = reward, f.Coins
		result.Checked = append([]int(nil), f.CheckIns[month]...)
		result.Streak = streak(f.CheckIns, now)
		return nil
	})
	metrics.RecordAction(domain.ActionCheckIn, err)
	if err != nil {
		log := logger.FromContext(ctx)
		if _, ok := domain.ReasonOf(err); ok || errors.Is(err, domain.ErrFarmNotFound) {
			log.Debug(LogMsgCheckInRejected, "address", address, "reason", err)
		} else {
			log.Error(LogMsgCheckInFailed, "address", address, "error", err)
		}
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewRewardEvent(event.CheckedIn, domain.RewardPayloadV1{
			Address:   address,
			Kind:      KindCheckIn,
			Amount:    result.Reward.String(),
			Detail:    today,
			Timestamp: now.Unix(),
		}))
	}
	return result, nil
}

// roll walks the weights and keeps the last row for rounding leftovers
func (s *service) roll() decimal.Decimal {
	rewards := s.catalog.CheckInRewards()
	r := s.rng.Float64()
	cumulative := 0.0
	for _, row := range rewards {
		cumulative += row.Probability
		if r < cumulative {
			return row.Coins
		}
	}
	return rewards[len(rewards)-1].Coins
}

// History returns the check-in days of month ("YYYY-MM"), or of the current
// month when month is empty.
func (s *service) History(ctx context.Context, address, month string) (*History, error) {
	now := clock.Time(s.clock)
	if month == "" {
		month = now.Format(MonthLayout)
	} else if _, err := time.Parse(MonthLayout, month); err != nil {
		return nil, fmt.Errorf("%w: month %q must be YYYY-MM", domain.ErrInvalidInput, month)
	}

	f, err := s.store.Get(ctx, address)
	if err != nil {
		return nil, err
	}
	days := append([]int{}, f.CheckIns[month]...)
	sort.Ints(days)
	return &History{
		Month:        month,
		Days:         days,
		CheckedToday: f.LastCheckIn == now.Format(DayLayout),
	}, nil
}

// streak counts consecutive checked-in days ending at now
func streak(checkIns map[string][]int, now time.Time) int {
	n := 0
	for day := now; ; day = day.AddDate(0, 0, -1) {
		if !contains(checkIns[day.Format(MonthLayout)], day.Day()) {
			return n
		}
		n++
	}
}

func contains(days []int, d int) bool {
	for _, v := range days {
		if v == d {
			return true
		}
	}
	return false
}
