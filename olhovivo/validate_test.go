package olhovivo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllNumeric(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   bool
	}{
		{"single integer", []string{"2451"}, true},
		{"several integers", []string{"230", "0"}, true},
		{"decimal", []string{"12.5"}, true},
		{"exponent", []string{"1e3"}, true},
		{"surrounding spaces", []string{" 35201 "}, true},
		{"negative", []string{"-4"}, true},
		{"letters", []string{"abc"}, false},
		{"line sign", []string{"8000-10"}, false},
		{"one bad value", []string{"230", "x"}, false},
		{"empty string", []string{""}, false},
		{"no values", nil, false},
		{"not a number", []string{"NaN"}, false},
		{"infinity", []string{"Inf"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllNumeric(tt.values...))
		})
	}
}

func TestValidDirection(t *testing.T) {
	assert.True(t, ValidDirection(DirectionPrimaryToSecondary))
	assert.True(t, ValidDirection(DirectionSecondaryToPrimary))
	assert.False(t, ValidDirection(0))
	assert.False(t, ValidDirection(3))
}

func TestCodeParams(t *testing.T) {
	t.Run("integers are truncated", func(t *testing.T) {
		params, err := codeParams("codigoParada", "480014610", "codigoLinha", " 12.9 ")
		require.NoError(t, err)
		assert.Equal(t, "480014610", params.Get("codigoParada"))
		assert.Equal(t, "12", params.Get("codigoLinha"))
	})

	t.Run("large integers are sent exactly", func(t *testing.T) {
		tests := []struct {
			value string
			want  string
		}{
			{"9007199254740993", "9007199254740993"},
			{"9223372036854775807", "9223372036854775807"},
			{"-9223372036854775808", "-9223372036854775808"},
			{"+42", "42"},
			{"1e3", "1000"},
			{"-7.9", "-7"},
		}

		for _, tt := range tests {
			params, err := codeParams("codigoLinha", tt.value)
			require.NoError(t, err, tt.value)
			assert.Equal(t, tt.want, params.Get("codigoLinha"), tt.value)
		}
	})

	t.Run("out of range codes are rejected", func(t *testing.T) {
		for _, value := range []string{"99999999999999999999", "-99999999999999999999", "9223372036854775808", "1e30", "-1e19", "9.3e18"} {
			params, err := codeParams("codigoLinha", value)
			require.ErrorIs(t, err, ErrInvalidParameter, value)
			assert.Nil(t, params)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "code out of range", vErr.Reason, value)
		}
	})

	t.Run("names the bad parameter", func(t *testing.T) {
		params, err := codeParams("codigoEmpresa", "230", "codigoLinha", "Lapa")
		require.ErrorIs(t, err, ErrInvalidParameter)
		assert.Nil(t, params)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "codigoLinha", vErr.Param)
		assert.Equal(t, "Lapa", vErr.Value)
	})
}
