package letters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/database/memory"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/store"
	"github.com/osse101/ZetaFarm_Go/internal/testing/eventtest"
)

const testAddress = "0xspeller"

// solPhrase is "Start Universal Journey"
const solPhrase = 2

func setup(t *testing.T, mutate func(f *domain.Farm)) (Service, *memory.FarmStore, *eventtest.Recorder, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	repo := memory.NewFarmStore()
	st := store.New(repo, 10, time.Hour)
	clk := clock.NewMock(1_700_000_000)
	rec := eventtest.NewRecorder()

	f := domain.NewFarm(testAddress, domain.DefaultStartingPlots, clk.Now())
	if mutate != nil {
		mutate(f)
	}
	_, _, err = st.Create(context.Background(), f)
	require.NoError(t, err)

	return NewService(st, cat, clk, rec), repo, rec, cat
}

// giveAll grants one of every letter of the phrase, plus extra
func giveAll(cat *catalog.Catalog, index int, extra int64) func(f *domain.Farm) {
	return func(f *domain.Farm) {
		p, _ := cat.Phrase(index)
		for _, l := range p.Letters() {
			f.Letters[l] = 1 + extra
		}
	}
}

func TestRedeem(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	t.Run("consumes one of each distinct letter", func(t *testing.T) {
		svc, repo, rec, _ := setup(t, func(f *domain.Farm) {
			giveAll(cat, solPhrase, 0)(f)
			f.Letters["U"] = 3 // appears twice in the phrase, consumed once
			f.Letters["Z"] = 1
		})

		res, err := svc.Redeem(context.Background(), testAddress, solPhrase)
		require.NoError(t, err)
		assert.Equal(t, "sol", res.Reward)
		assert.Equal(t, map[string]int64{"U": 2, "Z": 1}, res.Letters)

		f, err := repo.GetFarm(context.Background(), testAddress)
		require.NoError(t, err)
		assert.Equal(t, []string{"sol"}, f.Redeemed)
		assert.Equal(t, int64(2), f.Letters["U"])
		assert.Zero(t, f.Letters["S"])

		evts := rec.OfType(event.RewardRedeemed)
		require.Len(t, evts, 1)
		assert.Equal(t, "sol", evts[0].Payload.(domain.RewardPayloadV1).Detail)
	})

	t.Run("each reward once", func(t *testing.T) {
		svc, _, _, _ := setup(t, giveAll(cat, solPhrase, 1))

		_, err := svc.Redeem(context.Background(), testAddress, solPhrase)
		require.NoError(t, err)

		_, err = svc.Redeem(context.Background(), testAddress, solPhrase)
		code, ok := domain.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, domain.ReasonAlreadyRedeemed, code)
	})

	tests := []struct {
		name   string
		index  int
		mutate func(f *domain.Farm)
		want   domain.ReasonCode
	}{
		{"unknown phrase", 99, nil, domain.ReasonUnknownPhrase},
		{"negative index", -1, nil, domain.ReasonUnknownPhrase},
		{"no letters", solPhrase, nil, domain.ReasonPhraseIncomplete},
		{"one letter short", solPhrase, func(f *domain.Farm) {
			giveAll(cat, solPhrase, 0)(f)
			delete(f.Letters, "J")
		}, domain.ReasonPhraseIncomplete},
		{"already redeemed", solPhrase, func(f *domain.Farm) {
			giveAll(cat, solPhrase, 0)(f)
			f.Redeemed = []string{"sol"}
		}, domain.ReasonAlreadyRedeemed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, rec, _ := setup(t, tt.mutate)
			before, err := repo.GetFarm(context.Background(), testAddress)
			require.NoError(t, err)

			_, err = svc.Redeem(context.Background(), testAddress, tt.index)
			require.Error(t, err)
			code, ok := domain.ReasonOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, code)

			after, err := repo.GetFarm(context.Background(), testAddress)
			require.NoError(t, err)
			assert.Equal(t, before.Letters, after.Letters)
			assert.Equal(t, before.Redeemed, after.Redeemed)
			assert.Empty(t, rec.Events())
		})
	}
}

func TestProgress(t *testing.T) {
	svc, _, _, cat := setup(t, func(f *domain.Farm) {
		f.Letters["S"] = 1
		f.Letters["T"] = 2
		f.Redeemed = []string{"eth"}
	})

	progress, err := svc.Progress(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, progress, len(cat.Phrases()))

	sol := progress[solPhrase]
	assert.Equal(t, "sol", sol.Reward)
	assert.Equal(t, []string{"S", "T"}, sol.Owned)
	assert.NotContains(t, sol.Missing, "S")
	assert.Contains(t, sol.Missing, "J")
	assert.False(t, sol.Complete)
	assert.False(t, sol.Redeemed)

	assert.True(t, progress[1].Redeemed)
}

func TestProgress_UnknownFarm(t *testing.T) {
	svc, _, _, _ := setup(t, nil)

	_, err := svc.Progress(context.Background(), "0xnobody")
	assert.ErrorIs(t, err, domain.ErrFarmNotFound)
}
