package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test boundaries
const MaxAddressLength = 128

type TestStruct struct {
	Address string `validate:"required,max=128,address"`
	Email   string `validate:"omitempty,email"`
	PlotID  int    `validate:"min=0"`
}

func TestValidator_AddressValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		// Best case
		{"wallet address", "0x3f5CE5FBFe3E9af3971dD833D26bA9b5C936f0bE", false},
		{"plain id", "farmer_01", false},
		{"namespaced id", "zeta:player-7", false},

		// Boundaries
		{"one char", "a", false},
		{"exactly max length", strings.Repeat("a", MaxAddressLength), false},
		{"over max length", strings.Repeat("a", MaxAddressLength+1), true},

		// Invalid
		{"empty", "", true},
		{"with space", "0x farmer", true},
		{"with newline", "0xfarmer\n", true},
		{"with slash", "0x/../farmer", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(TestStruct{Address: tt.address})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_MultipleFieldErrors(t *testing.T) {
	InitValidator()
	v := GetValidator()

	err := v.ValidateStruct(TestStruct{Address: "", Email: "not-an-email", PlotID: -1})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["address"])
	assert.Equal(t, "Invalid email format", fields["email"])
	assert.Equal(t, "Must be at least 0", fields["plotid"])
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, fields)
	assert.Nil(t, FormatValidationError(nil))
}
