// Package resolver matches free-form exercise descriptions against the
// canonical catalog using staged matching with graceful fallback
package resolver

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"exercise-resolver/internal/dictionary"
	"exercise-resolver/pkg/models"
	"exercise-resolver/pkg/similarity"
	"exercise-resolver/pkg/textnorm"
)

// DefaultThreshold is the general fuzzy-match acceptance threshold
const DefaultThreshold = 0.6

const (
	// Per-token Jaro-Winkler floor for counting a query token as matched
	tokenMatchThreshold = 0.8
	// Share of query tokens that must fuzzy-match an alias token
	tokenFractionFloor = 0.5

	substringCap          = 0.95
	tokenCap              = 0.9
	categoryFallbackScore = 0.3

	maxAlternatives  = 3
	alternativeFloor = 0.3

	maxPlaceholderName = 120
)

const (
	placeholderDescription = "Unverified exercise. Double-check the name before performing it."
	placeholderMediaRef    = "media/placeholder.png"
	unknownExerciseName    = "Unknown Exercise"
)

// categoryKeywords maps free-text session phrases ("leg day", "upper body")
// to catalog category tags, checked in order. Multi-word keywords are matched
// as substrings of the normalized input, single words against whole tokens.
var categoryKeywords = []struct {
	tag      string
	keywords []string
}{
	{"upper body", []string{"upper body", "upper", "push day", "pull day", "arm day", "arms"}},
	{"legs", []string{"lower body", "leg day", "legs", "leg"}},
	{"cardio", []string{"cardio", "conditioning", "aerobic"}},
	{"core", []string{"core", "abs", "ab day"}},
	{"full body", []string{"full body", "total body", "circuit"}},
}

// Trace describes a single match decision for telemetry
type Trace struct {
	Input       string
	Method      models.MatchMethod
	Score       float64
	MatchedSlug string
}

// TraceFunc receives every match decision. Implementations must be fast and
// must not block; the resolver calls it synchronously.
type TraceFunc func(Trace)

// Resolver resolves raw exercise text against a dictionary index. It holds
// no mutable state beyond the read-only index and is safe for concurrent use.
type Resolver struct {
	dict      *dictionary.Index
	threshold float64
	trace     TraceFunc
	logger    *slog.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithThreshold overrides the default fuzzy-match threshold
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// WithTraceFunc installs a hook invoked with every match decision
func WithTraceFunc(fn TraceFunc) Option {
	return func(r *Resolver) {
		r.trace = fn
	}
}

// New creates a resolver over the given dictionary index
func New(dict *dictionary.Index, opts ...Option) *Resolver {
	r := &Resolver{
		dict:      dict,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.threshold <= 0 || r.threshold > 1 {
		r.threshold = DefaultThreshold
	}
	return r
}

// Resolve resolves raw text with the resolver's configured threshold
func (r *Resolver) Resolve(raw string) models.ResolutionResult {
	return r.ResolveWithThreshold(raw, r.threshold)
}

// ResolveWithThreshold runs the staged matching pipeline: exact alias lookup,
// substring containment, token overlap, general fuzzy, category-keyword
// fallback, and finally a synthetic unresolved placeholder. The first stage
// whose best candidate clears the threshold wins; ties within a stage keep
// the entry appearing first in catalog order. The call never fails: any
// input, including empty or garbage text, produces a ResolutionResult.
func (r *Resolver) ResolveWithThreshold(raw string, threshold float64) models.ResolutionResult {
	if threshold <= 0 || threshold > 1 {
		threshold = r.threshold
	}

	query := textnorm.Normalize(raw)
	if query == "" {
		return r.finish(raw, r.unresolved(raw, nil))
	}

	// Full-dictionary fuzzy ranking, reused for the fuzzy stage and for
	// "did you mean" alternatives regardless of the winning stage
	ranked := r.rankAll(query)

	if entry := r.dict.LookupExact(query); entry != nil {
		return r.finish(raw, models.ResolutionResult{
			Matched: true,
			Candidate: models.MatchCandidate{
				Entry:  entry,
				Score:  1.0,
				Method: models.MethodExact,
			},
			Alternatives: alternatives(ranked, entry.Slug),
		})
	}

	if candidate, ok := r.bestSubstring(query); ok && candidate.Score > threshold {
		return r.finish(raw, models.ResolutionResult{
			Matched:      true,
			Candidate:    candidate,
			Alternatives: alternatives(ranked, candidate.Entry.Slug),
		})
	}

	if candidate, ok := r.bestTokenOverlap(query); ok && candidate.Score > threshold {
		return r.finish(raw, models.ResolutionResult{
			Matched:      true,
			Candidate:    candidate,
			Alternatives: alternatives(ranked, candidate.Entry.Slug),
		})
	}

	if len(ranked) > 0 && ranked[0].Score > threshold {
		return r.finish(raw, models.ResolutionResult{
			Matched:      true,
			Candidate:    ranked[0],
			Alternatives: alternatives(ranked, ranked[0].Entry.Slug),
		})
	}

	if candidate, ok := r.categoryFallback(query); ok {
		return r.finish(raw, models.ResolutionResult{
			Matched:      true,
			Candidate:    candidate,
			Alternatives: alternatives(ranked, candidate.Entry.Slug),
		})
	}

	return r.finish(raw, r.unresolved(raw, ranked))
}

// rankAll scores every catalog entry against the normalized query using the
// best of its aliases. The result is sorted by score descending with a
// stable sort, so equal scores keep catalog order.
func (r *Resolver) rankAll(query string) []models.MatchCandidate {
	entries := r.dict.Entries()
	ranked := make([]models.MatchCandidate, 0, len(entries))

	for _, entry := range entries {
		best := 0.0
		for _, alias := range entryAliases(entry) {
			if score := similarity.Score(query, alias); score > best {
				best = score
			}
		}
		ranked = append(ranked, models.MatchCandidate{
			Entry:  entry,
			Score:  best,
			Method: models.MethodFuzzy,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// bestSubstring finds the best candidate where the query contains an alias
// or vice versa. The similarity score gets a small containment bonus scaled
// by length ratio, capped below the exact-match score.
func (r *Resolver) bestSubstring(query string) (models.MatchCandidate, bool) {
	var best models.MatchCandidate
	found := false

	for _, entry := range r.dict.Entries() {
		for _, alias := range entryAliases(entry) {
			normalized := textnorm.Normalize(alias)
			if normalized == "" {
				continue
			}
			if !strings.Contains(query, normalized) && !strings.Contains(normalized, query) {
				continue
			}

			score := similarity.Score(query, alias)
			bonus := 0.05
			if similarity.LengthRatio(query, normalized) > 0.7 {
				bonus = 0.10
			}
			score += bonus
			if score > substringCap {
				score = substringCap
			}

			if !found || score > best.Score {
				best = models.MatchCandidate{
					Entry:  entry,
					Score:  score,
					Method: models.MethodSubstring,
				}
				found = true
			}
		}
	}

	return best, found
}

// bestTokenOverlap finds the best candidate where more than half of the
// query tokens fuzzy-match an alias token. The score blends whole-string
// similarity with the matched-token fraction.
func (r *Resolver) bestTokenOverlap(query string) (models.MatchCandidate, bool) {
	queryTokens := strings.Fields(query)
	if len(queryTokens) == 0 {
		return models.MatchCandidate{}, false
	}

	var best models.MatchCandidate
	found := false

	for _, entry := range r.dict.Entries() {
		for _, alias := range entryAliases(entry) {
			aliasTokens := textnorm.Tokenize(alias)
			if len(aliasTokens) == 0 {
				continue
			}

			matched := 0
			for _, queryToken := range queryTokens {
				for _, aliasToken := range aliasTokens {
					if similarity.TokenSimilarity(queryToken, aliasToken) > tokenMatchThreshold {
						matched++
						break
					}
				}
			}

			fraction := float64(matched) / float64(len(queryTokens))
			if fraction <= tokenFractionFloor {
				continue
			}

			score := 0.6*similarity.Score(query, alias) + 0.4*fraction
			if score > tokenCap {
				score = tokenCap
			}

			if !found || score > best.Score {
				best = models.MatchCandidate{
					Entry:  entry,
					Score:  score,
					Method: models.MethodToken,
				}
				found = true
			}
		}
	}

	return best, found
}

// categoryFallback scans the normalized input for session-level category
// keywords and returns the category's representative exercise with a fixed
// low confidence, signaling a non-semantic match.
func (r *Resolver) categoryFallback(query string) (models.MatchCandidate, bool) {
	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(query) {
		tokens[token] = struct{}{}
	}

	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			var hit bool
			if strings.Contains(keyword, " ") {
				hit = strings.Contains(query, keyword)
			} else {
				_, hit = tokens[keyword]
			}
			if !hit {
				continue
			}

			entries := r.dict.LookupByCategory(group.tag)
			if len(entries) == 0 {
				continue
			}

			return models.MatchCandidate{
				Entry:  entries[0],
				Score:  categoryFallbackScore,
				Method: models.MethodCategoryFallback,
			}, true
		}
	}

	return models.MatchCandidate{}, false
}

// unresolved builds the matched=false result around a synthetic placeholder
// entry carrying the original input text.
func (r *Resolver) unresolved(raw string, ranked []models.MatchCandidate) models.ResolutionResult {
	name := strings.TrimSpace(raw)
	if name == "" {
		name = unknownExerciseName
	}
	if runes := []rune(name); len(runes) > maxPlaceholderName {
		name = string(runes[:maxPlaceholderName])
	}

	entry := &models.ExerciseEntry{
		Slug:          "unresolved-" + uuid.NewString()[:8],
		CanonicalName: name,
		Description:   placeholderDescription,
		MediaRef:      placeholderMediaRef,
		Placeholder:   true,
	}

	return models.ResolutionResult{
		Matched: false,
		Candidate: models.MatchCandidate{
			Entry:  entry,
			Score:  0,
			Method: models.MethodUnresolved,
		},
		Alternatives: alternatives(ranked, ""),
	}
}

// finish reports the decision to the trace hook and debug log
func (r *Resolver) finish(raw string, result models.ResolutionResult) models.ResolutionResult {
	slug := ""
	if result.Candidate.Entry != nil && !result.Candidate.Entry.Placeholder {
		slug = result.Candidate.Entry.Slug
	}

	if r.trace != nil {
		r.trace(Trace{
			Input:       raw,
			Method:      result.Candidate.Method,
			Score:       result.Candidate.Score,
			MatchedSlug: slug,
		})
	}

	r.logger.Debug("Resolved exercise text",
		"input", raw,
		"method", result.Candidate.Method,
		"score", result.Candidate.Score,
		"slug", slug)

	return result
}

// alternatives returns the next-best fuzzy candidates for disambiguation,
// excluding the winning slug, deduplicated and capped.
func alternatives(ranked []models.MatchCandidate, excludeSlug string) []models.MatchCandidate {
	var out []models.MatchCandidate
	seen := make(map[string]struct{}, maxAlternatives)

	for _, candidate := range ranked {
		if len(out) == maxAlternatives {
			break
		}
		if candidate.Score < alternativeFloor {
			break
		}
		if candidate.Entry.Slug == excludeSlug {
			continue
		}
		if _, dup := seen[candidate.Entry.Slug]; dup {
			continue
		}
		seen[candidate.Entry.Slug] = struct{}{}
		out = append(out, candidate)
	}

	return out
}

// entryAliases returns the entry's canonical name followed by its synonyms
func entryAliases(entry *models.ExerciseEntry) []string {
	aliases := make([]string, 0, len(entry.Synonyms)+1)
	aliases = append(aliases, entry.CanonicalName)
	return append(aliases, entry.Synonyms...)
}
