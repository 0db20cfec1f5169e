package similarity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreBounds(t *testing.T) {
	pairs := [][2]string{
		{"bench press", "bench press"},
		{"bench press", "incline bench press"},
		{"squat", "deadlift"},
		{"a", "completely different phrase with many words"},
		{"", "bench press"},
		{"", ""},
		{"🙂", "bench"},
	}

	for _, pair := range pairs {
		score := Score(pair[0], pair[1])
		require.GreaterOrEqual(t, score, 0.0, "pair: %v", pair)
		require.LessOrEqual(t, score, 1.0, "pair: %v", pair)
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"bench press", "incline bench press"},
		{"barbell squat", "squats"},
		{"deadlift", "romanian deadlift"},
		{"running", "rowing"},
		{"pull-up", "pullup"},
	}

	for _, pair := range pairs {
		require.Equal(t, Score(pair[0], pair[1]), Score(pair[1], pair[0]), "pair: %v", pair)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{
			name: "identical after normalization",
			a:    "Bench  Press!",
			b:    "bench press",
			min:  1.0,
			max:  1.0,
		},
		{
			name: "empty left side",
			a:    "",
			b:    "squat",
			min:  0.0,
			max:  0.0,
		},
		{
			name: "empty right side",
			a:    "squat",
			b:    "",
			min:  0.0,
			max:  0.0,
		},
		{
			name: "trailing s typo stays high",
			a:    "barbell squats",
			b:    "barbell squat",
			min:  0.75,
			max:  1.0,
		},
		{
			name: "contained phrase gets bonus",
			a:    "incline bench press",
			b:    "bench press",
			min:  0.6,
			max:  1.0,
		},
		{
			name: "unrelated strings score low",
			a:    "zebra crossing",
			b:    "bench press",
			min:  0.0,
			max:  0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(tt.a, tt.b)
			require.GreaterOrEqual(t, score, tt.min)
			require.LessOrEqual(t, score, tt.max)
		})
	}
}

func TestScoreMonotonicDegradation(t *testing.T) {
	canonical := "barbell squat"

	exact := Score(canonical, canonical)
	typo := Score(canonical, "barbell squet")
	unrelated := Score(canonical, "xqzv kwpl mnrt")

	require.Greater(t, exact, typo)
	require.Greater(t, typo, unrelated)
}

func TestTokenSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{
			name: "identical tokens",
			a:    "squat",
			b:    "squat",
			min:  1.0,
			max:  1.0,
		},
		{
			name: "plural variant",
			a:    "squats",
			b:    "squat",
			min:  0.8,
			max:  1.0,
		},
		{
			name: "empty token",
			a:    "",
			b:    "squat",
			min:  0.0,
			max:  0.0,
		},
		{
			name: "distinct tokens",
			a:    "bench",
			b:    "row",
			min:  0.0,
			max:  0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSimilarity(tt.a, tt.b)
			require.GreaterOrEqual(t, got, tt.min)
			require.LessOrEqual(t, got, tt.max)
		})
	}
}

func TestLengthRatio(t *testing.T) {
	require.Equal(t, 0.0, LengthRatio("", "abc"))
	require.Equal(t, 1.0, LengthRatio("abc", "abc"))
	require.InDelta(t, 0.5, LengthRatio("ab", "abcd"), 1e-9)
	require.Equal(t, LengthRatio("ab", "abcd"), LengthRatio("abcd", "ab"))
}
