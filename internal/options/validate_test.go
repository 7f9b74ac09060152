package options

import (
	"errors"
	"testing"

	"github.com/erraggy/oasderef/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantMsg string
	}{
		{"none", []bool{false, false, false}, "no input"},
		{"one", []bool{false, true, false}, ""},
		{"two", []bool{true, true, false}, "too many inputs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("no input", "too many inputs", tt.sources...)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	assert.NoError(t, ValidateNonNegative("maxRefDepth", 0))
	assert.NoError(t, ValidateNonNegative("maxRefDepth", 5))

	err := ValidateNonNegative("maxRefDepth", -1)
	var cfgErr *oaserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "maxRefDepth", cfgErr.Option)
}
