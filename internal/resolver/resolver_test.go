package resolver

import (
	"math/rand"
	"strings"
	"testing"

	"exercise-resolver/internal/dictionary"
	"exercise-resolver/pkg/models"

	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, opts ...Option) (*Resolver, *dictionary.Index) {
	t.Helper()

	idx, err := dictionary.Load("", true)
	require.NoError(t, err)

	return New(idx, opts...), idx
}

func TestResolveExactCanonicalNames(t *testing.T) {
	r, idx := newTestResolver(t)

	for _, entry := range idx.Entries() {
		result := r.Resolve(entry.CanonicalName)

		require.True(t, result.Matched, "entry %q", entry.Slug)
		require.Equal(t, entry.Slug, result.Candidate.Entry.Slug)
		require.Equal(t, models.MethodExact, result.Candidate.Method)
		require.Equal(t, 1.0, result.Candidate.Score)
	}
}

func TestResolveSynonyms(t *testing.T) {
	r, idx := newTestResolver(t)

	for _, entry := range idx.Entries() {
		for _, synonym := range entry.Synonyms {
			result := r.Resolve(synonym)

			require.True(t, result.Matched, "synonym %q", synonym)
			require.Equal(t, entry.Slug, result.Candidate.Entry.Slug, "synonym %q", synonym)
			require.Equal(t, models.MethodExact, result.Candidate.Method)
		}
	}
}

func TestResolveScenarios(t *testing.T) {
	r, _ := newTestResolver(t)

	tests := []struct {
		name        string
		input       string
		wantSlug    string
		wantMethods []models.MatchMethod
		minScore    float64
	}{
		{
			name:        "exact match with mixed case",
			input:       "Bench Press",
			wantSlug:    "bench-press",
			wantMethods: []models.MatchMethod{models.MethodExact},
			minScore:    1.0,
		},
		{
			name:        "trailing s tolerated",
			input:       "Barbell Squats",
			wantSlug:    "barbell-squat",
			wantMethods: []models.MatchMethod{models.MethodExact, models.MethodSubstring, models.MethodFuzzy},
			minScore:    0.8,
		},
		{
			name:        "embedded in prescription text",
			input:       "Easy run 30 minutes",
			wantSlug:    "running",
			wantMethods: []models.MatchMethod{models.MethodSubstring, models.MethodToken, models.MethodFuzzy},
			minScore:    0.6,
		},
		{
			name:        "typo in canonical name",
			input:       "romanian deadlft",
			wantSlug:    "romanian-deadlift",
			wantMethods: []models.MatchMethod{models.MethodToken, models.MethodFuzzy},
			minScore:    0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Resolve(tt.input)

			require.True(t, result.Matched)
			require.Equal(t, tt.wantSlug, result.Candidate.Entry.Slug)
			require.Contains(t, tt.wantMethods, result.Candidate.Method)
			require.GreaterOrEqual(t, result.Candidate.Score, tt.minScore)
		})
	}
}

func TestResolveCategoryFallback(t *testing.T) {
	r, _ := newTestResolver(t)

	tests := []struct {
		name    string
		input   string
		wantTag string
	}{
		{
			name:    "upper body day",
			input:   "upper body day",
			wantTag: "upper body",
		},
		{
			name:    "leg day",
			input:   "leg day session",
			wantTag: "legs",
		},
		{
			name:    "cardio session",
			input:   "some cardio to finish",
			wantTag: "cardio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Resolve(tt.input)

			require.True(t, result.Matched)
			require.Equal(t, models.MethodCategoryFallback, result.Candidate.Method)
			require.InDelta(t, 0.3, result.Candidate.Score, 1e-9)
			require.Contains(t, result.Candidate.Entry.CategoryTags, tt.wantTag)
		})
	}
}

func TestResolveUnresolved(t *testing.T) {
	r, _ := newTestResolver(t)

	longRandom := func(n int) string {
		const letters = "qwxzjvk "
		rng := rand.New(rand.NewSource(42))
		var b strings.Builder
		for range n {
			b.WriteByte(letters[rng.Intn(len(letters))])
		}
		return b.String()
	}

	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"emoji only", "🙂🙂🙂"},
		{"pure punctuation", "?!...---"},
		{"long random text", longRandom(10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result models.ResolutionResult
			require.NotPanics(t, func() {
				result = r.Resolve(tt.input)
			})

			require.False(t, result.Matched)
			require.NotNil(t, result.Candidate.Entry)
			require.True(t, result.Candidate.Entry.Placeholder)
			require.Equal(t, models.MethodUnresolved, result.Candidate.Method)
			require.Equal(t, 0.0, result.Candidate.Score)
			require.NotEmpty(t, result.Candidate.Entry.Slug)
			require.NotEmpty(t, result.Candidate.Entry.CanonicalName)
			require.NotEmpty(t, result.Candidate.Entry.Description)
		})
	}
}

func TestResolveUnknownAbbreviationIsDeterministic(t *testing.T) {
	r, _ := newTestResolver(t)

	first := r.Resolve("bp 3x8")
	for range 5 {
		again := r.Resolve("bp 3x8")
		require.Equal(t, first.Matched, again.Matched)
		require.Equal(t, first.Candidate.Method, again.Candidate.Method)
		require.Equal(t, first.Candidate.Score, again.Candidate.Score)
		if first.Matched {
			require.Equal(t, first.Candidate.Entry.Slug, again.Candidate.Entry.Slug)
		}
	}
}

func TestResolveAlternatives(t *testing.T) {
	r, _ := newTestResolver(t)

	result := r.Resolve("bench press")
	require.True(t, result.Matched)
	require.LessOrEqual(t, len(result.Alternatives), 3)

	seen := map[string]struct{}{result.Candidate.Entry.Slug: {}}
	lastScore := 1.0
	for _, alt := range result.Alternatives {
		_, dup := seen[alt.Entry.Slug]
		require.False(t, dup, "alternative %q duplicated", alt.Entry.Slug)
		seen[alt.Entry.Slug] = struct{}{}

		require.LessOrEqual(t, alt.Score, lastScore)
		lastScore = alt.Score
	}
}

func TestResolveWithThreshold(t *testing.T) {
	r, _ := newTestResolver(t)

	// A loose threshold accepts a fuzzy candidate that a strict one rejects
	loose := r.ResolveWithThreshold("benchh presss", 0.5)
	require.True(t, loose.Matched)
	require.Equal(t, "bench-press", loose.Candidate.Entry.Slug)

	strict := r.ResolveWithThreshold("benchh presss", 0.99)
	if strict.Matched {
		// Only the non-semantic category fallback may clear an impossible
		// fuzzy threshold
		require.Equal(t, models.MethodCategoryFallback, strict.Candidate.Method)
	}
}

func TestResolveTraceHook(t *testing.T) {
	var traces []Trace
	r, _ := newTestResolver(t, WithTraceFunc(func(trace Trace) {
		traces = append(traces, trace)
	}))

	r.Resolve("bench press")
	r.Resolve("zzz qqq xxx")

	require.Len(t, traces, 2)

	require.Equal(t, "bench press", traces[0].Input)
	require.Equal(t, models.MethodExact, traces[0].Method)
	require.Equal(t, "bench-press", traces[0].MatchedSlug)
	require.Equal(t, 1.0, traces[0].Score)

	require.Equal(t, models.MethodUnresolved, traces[1].Method)
	require.Empty(t, traces[1].MatchedSlug)
}

func TestResolveConcurrent(t *testing.T) {
	r, idx := newTestResolver(t)

	inputs := make([]string, 0, idx.Len())
	for _, entry := range idx.Entries() {
		inputs = append(inputs, entry.CanonicalName)
	}

	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for _, input := range inputs {
				result := r.Resolve(input)
				if !result.Matched {
					t.Errorf("expected match for %q", input)
				}
			}
		}()
	}
	for range 8 {
		<-done
	}
}

func TestMethodRankOrdering(t *testing.T) {
	ordered := []models.MatchMethod{
		models.MethodExact,
		models.MethodSubstring,
		models.MethodToken,
		models.MethodFuzzy,
		models.MethodCategoryFallback,
		models.MethodUnresolved,
	}

	for i := 1; i < len(ordered); i++ {
		require.Less(t, ordered[i-1].Rank(), ordered[i].Rank())
	}
}
