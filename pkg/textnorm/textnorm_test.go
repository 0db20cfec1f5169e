package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases and trims",
			input: "  Bench Press  ",
			want:  "bench press",
		},
		{
			name:  "strips punctuation",
			input: "3x8 incline bench, superset w/ rows!",
			want:  "3x8 incline bench superset w rows",
		},
		{
			name:  "strips diacritics",
			input: "Élodie's Première Séance",
			want:  "elodie s premiere seance",
		},
		{
			name:  "collapses whitespace",
			input: "barbell\t\tsquat\n\n5x5",
			want:  "barbell squat 5x5",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   \t\n ",
			want:  "",
		},
		{
			name:  "pure punctuation",
			input: "?!...---",
			want:  "",
		},
		{
			name:  "emoji only",
			input: "🙂🙂🙂",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Bench Press",
		"  3x8  Squats @ RPE 8 ",
		"Élodie",
		"",
		"🙂 leg day 🙂",
		strings.Repeat("pull-up ", 500),
	}

	for _, input := range inputs {
		once := Normalize(input)
		require.Equal(t, once, Normalize(once), "input: %q", input)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple phrase",
			input: "Incline Bench Press",
			want:  []string{"incline", "bench", "press"},
		},
		{
			name:  "drops empty tokens",
			input: " -- bench -- press -- ",
			want:  []string{"bench", "press"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "punctuation only",
			input: "!!!",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}
