package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ReasonCode
		wantOK   bool
	}{
		{"bare sentinel", ErrNotRipe, ReasonNotRipe, true},
		{"wrapped sentinel", fmt.Errorf("%w: plot 3", ErrPlotLocked), ReasonPlotLocked, true},
		{"double wrapped", fmt.Errorf("harvest: %w", fmt.Errorf("%w: plot 1", ErrPestsPresent)), ReasonPestsPresent, true},
		{"plain error", errors.New("boom"), "", false},
		{"infrastructure error", ErrFarmNotFound, "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := ReasonOf(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestReasonError_IsMatchesSentinelOnly(t *testing.T) {
	err := fmt.Errorf("%w: plot 2", ErrAlreadyFertilized)

	assert.ErrorIs(t, err, ErrAlreadyFertilized)
	assert.NotErrorIs(t, err, ErrNotRipe)
	assert.Contains(t, err.Error(), ErrMsgAlreadyFertilized)
}
