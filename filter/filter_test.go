package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/olhovivo/olhovivo"
)

var testLines = []olhovivo.Line{
	{Code: 1273, SignPrefix: "8000", SignSuffix: 10, Direction: 1, PrimaryTerminal: "PCA.RAMOS DE AZEVEDO", SecondaryTerminal: "TERMINAL LAPA"},
	{Code: 34041, SignPrefix: "8000", SignSuffix: 10, Direction: 2, PrimaryTerminal: "PCA.RAMOS DE AZEVEDO", SecondaryTerminal: "TERMINAL LAPA"},
	{Code: 2451, SignPrefix: "7021", SignSuffix: 10, Direction: 1, PrimaryTerminal: "TERM. JOÃO DIAS", SecondaryTerminal: "JD. MARACÁ", Circular: true},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "field comparison",
			expression: `item.Code == 1273`,
		},
		{
			name:       "helpers",
			expression: `hasText(item.SecondaryTerminal, "lapa") and not item.Circular`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:        "invalid syntax",
			expression:  `hasText(item.Name, "unclosed`,
			wantErr:     true,
			errContains: "failed to compile expression",
		},
		{
			name:       "non boolean result",
			expression: `lower("ABC")`,
			wantErr:    true,
		},
	}

	compiler := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestApplyLines(t *testing.T) {
	tests := []struct {
		expression string
		wantCodes  []int
	}{
		{`item.Code == 1273`, []int{1273}},
		{`item.SignPrefix == "8000"`, []int{1273, 34041}},
		{`hasPrefix(item.PrimaryTerminal, "term")`, []int{2451}},
		{`item.Circular`, []int{2451}},
		{`hasSuffix(item.SecondaryTerminal, "LAPA") and item.Code > 2000`, []int{34041}},
		{`upper(item.SecondaryTerminal) == "NOWHERE"`, []int{}},
	}

	compiler := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			matched, err := Apply(f, testLines)
			require.NoError(t, err)

			codes := make([]int, 0, len(matched))
			for _, l := range matched {
				codes = append(codes, l.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}

func TestApplyNilFilter(t *testing.T) {
	matched, err := Apply[olhovivo.Line](nil, testLines)
	require.NoError(t, err)
	assert.Equal(t, testLines, matched)
}

func TestApplyVehicles(t *testing.T) {
	recent := time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)
	vehicles := []olhovivo.Vehicle{
		{Prefix: "11433", Accessible: true, UpdatedAt: recent, Latitude: -23.5505, Longitude: -46.6333},
		{Prefix: "11434", Accessible: true, UpdatedAt: "2017-05-07T14:30:00Z", Latitude: -23.5505, Longitude: -46.6333},
		{Prefix: "11435", Accessible: false, UpdatedAt: recent, Latitude: -23.9608, Longitude: -46.3336},
	}

	compiler := NewCompiler()

	f, err := compiler.Compile(`item.Accessible and minutesSince(item.UpdatedAt) < 10`)
	require.NoError(t, err)
	matched, err := Apply(f, vehicles)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, olhovivo.FlexString("11433"), matched[0].Prefix)

	// Sé to Santos is roughly 55 km
	f, err = compiler.Compile(`distanceKm(item.Latitude, item.Longitude, -23.5505, -46.6333) < 10`)
	require.NoError(t, err)
	matched, err = Apply(f, vehicles)
	require.NoError(t, err)
	assert.Len(t, matched, 2)
}

func TestApplyEvaluationError(t *testing.T) {
	f, err := NewCompiler().Compile(`item.NoSuchField == 1`)
	require.NoError(t, err)

	_, err = Apply(f, testLines)
	require.Error(t, err)

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, 0, evalErr.Index)
	assert.Equal(t, `item.NoSuchField == 1`, evalErr.Expression)
}

func TestCompilerCache(t *testing.T) {
	compiler := NewCompiler(WithCache(2))

	first, err := compiler.Compile(`item.Code == 1`)
	require.NoError(t, err)
	again, err := compiler.Compile(` item.Code == 1 `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.Cached())

	_, err = compiler.Compile(`item.Code == 2`)
	require.NoError(t, err)
	_, err = compiler.Compile(`item.Code == 3`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Cached())

	evicted, err := compiler.Compile(`item.Code == 1`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)

	uncached := NewCompiler(WithCache(0))
	_, err = uncached.Compile(`item.Code == 1`)
	require.NoError(t, err)
	assert.Zero(t, uncached.Cached())
}

func TestWithFunctions(t *testing.T) {
	compiler := NewCompiler(WithFunctions(map[string]any{
		"isTrunk": func(prefix string) bool { return prefix == "8000" },
	}))

	f, err := compiler.Compile(`isTrunk(item.SignPrefix)`)
	require.NoError(t, err)

	matched, err := Apply(f, testLines)
	require.NoError(t, err)
	assert.Len(t, matched, 2)
}

func TestLRUCache(t *testing.T) {
	c := newLRUCache[int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Put("c", 3) // evicts b, a was used more recently
	_, ok = c.Get("b")
	assert.False(t, ok)

	c.Put("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Len())
}
