// Package letters redeems collected phrase letters for rewards.
package letters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/metrics"
	"github.com/osse101/ZetaFarm_Go/internal/store"
)

// Log messages
const (
	LogMsgRedeemRejected = "Letter redemption rejected"
	LogMsgRedeemFailed   = "Letter redemption failed"
)

// KindRedeem labels redemption reward events
const KindRedeem = "letters"

// Catalog supplies the phrase table
type Catalog interface {
	Phrase(index int) (catalog.Phrase, bool)
	Phrases() []catalog.Phrase
}

// Service defines the letter operations
type Service interface {
	Redeem(ctx context.Context, address string, phraseIndex int) (*Redemption, error)
	Progress(ctx context.Context, address string) ([]PhraseProgress, error)
}

// Redemption is a completed phrase exchange
type Redemption struct {
	Phrase  string           `json:"phrase"`
	Reward  string           `json:"reward"`
	Letters map[string]int64 `json:"letters"`
}

// PhraseProgress shows how close a player is to one phrase
type PhraseProgress struct {
	Index    int      `json:"index"`
	Phrase   string   `json:"phrase"`
	Reward   string   `json:"reward"`
	Owned    []string `json:"owned"`
	Missing  []string `json:"missing"`
	Complete bool     `json:"complete"`
	Redeemed bool     `json:"redeemed"`
}

type service struct {
	store     *store.Store
	catalog   Catalog
	clock     clock.Clock
	publisher event.Publisher
}

// NewService creates a new letters service
func NewService(st *store.Store, cat Catalog, clk clock.Clock, publisher event.Publisher) Service {
	return &service{
		store:     st,
		catalog:   cat,
		clock:     clk,
		publisher: publisher,
	}
}

// Redeem trades one of each distinct letter of a phrase for its reward
func (s *service) Redeem(ctx context.Context, address string, phraseIndex int) (*Redemption, error) {
	now := s.clock.Now()
	result := &Redemption{}
	_, err := s.store.Update(ctx, address, func(f *domain.Farm) error {
		phrase, ok := s.catalog.Phrase(phraseIndex)
		if !ok {
			return fmt.Errorf("%w: %d", domain.ErrUnknownPhrase, phraseIndex)
		}
		if f.HasRedeemed(phrase.Reward) {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyRedeemed, phrase.Reward)
		}
		needed := phrase.Letters()
		if _, missing := split(f.Letters, needed); len(missing) > 0 {
			return fmt.Errorf("%w: missing %s", domain.ErrPhraseIncomplete, strings.Join(missing, ""))
		}
		for _, l := range needed {
			f.Letters[l]--
			if f.Letters[l] == 0 {
				delete(f.Letters, l)
			}
		}
		f.Redeemed = append(f.Redeemed, phrase.Reward)
		f.UpdatedAt = now

		result.Phrase, result.Reward = phrase.Text, phrase.Reward
		result.Letters = make(map[string]int64, len(f.Letters))
		for l, n := range f.Letters {
			result.Letters[l] = n
		}
		return nil
	})
	metrics.RecordAction(domain.ActionLetterExchange, err)
	if err != nil {
		log := logger.FromContext(ctx)
		if _, ok := domain.ReasonOf(err); ok || errors.Is(err, domain.ErrFarmNotFound) {
			log.Debug(LogMsgRedeemRejected, "address", address, "phrase", phraseIndex, "reason", err)
		} else {
			log.Error(LogMsgRedeemFailed, "address", address, "phrase", phraseIndex, "error", err)
		}
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewRewardEvent(event.RewardRedeemed, domain.RewardPayloadV1{
			Address:   address,
			Kind:      KindRedeem,
			Amount:    "1",
			Detail:    result.Reward,
			Timestamp: now,
		}))
	}
	return result, nil
}

// Progress reports owned and missing letters for every phrase
func (s *service) Progress(ctx context.Context, address string) ([]PhraseProgress, error) {
	f, err := s.store.Get(ctx, address)
	if err != nil {
		return nil, err
	}
	phrases := s.catalog.Phrases()
	out := make([]PhraseProgress, 0, len(phrases))
	for i, p := range phrases {
		owned, missing := split(f.Letters, p.Letters())
		out = append(out, PhraseProgress{
			Index:    i,
			Phrase:   p.Text,
			Reward:   p.Reward,
			Owned:    owned,
			Missing:  missing,
			Complete: len(missing) == 0,
			Redeemed: f.HasRedeemed(p.Reward),
		})
	}
	return out, nil
}

func split(inventory map[string]int64, needed []string) (owned, missing []string) {
	owned, missing = []string{}, []string{}
	for _, l := range needed {
		if inventory[l] > 0 {
			owned = append(owned, l)
		} else {
			missing = append(missing, l)
		}
	}
	return owned, missing
}
