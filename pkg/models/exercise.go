// Package models defines the data structures used throughout the application
package models

import (
	"time"
)

// MatchMethod identifies which resolution stage produced a match
type MatchMethod string

const (
	MethodExact            MatchMethod = "exact"
	MethodSubstring        MatchMethod = "substring"
	MethodToken            MatchMethod = "token"
	MethodFuzzy            MatchMethod = "fuzzy"
	MethodCategoryFallback MatchMethod = "category_fallback"
	MethodUnresolved       MatchMethod = "unresolved"
)

// Rank returns the precedence of a match method for tie-breaking,
// lower is stronger
func (m MatchMethod) Rank() int {
	switch m {
	case MethodExact:
		return 0
	case MethodSubstring:
		return 1
	case MethodToken:
		return 2
	case MethodFuzzy:
		return 3
	case MethodCategoryFallback:
		return 4
	default:
		return 5
	}
}

// ExerciseEntry represents a canonical exercise record in the dictionary.
// Entries are read-only after the dictionary index is built.
type ExerciseEntry struct {
	Slug           string   `json:"slug"`
	CanonicalName  string   `json:"canonical_name"`
	Synonyms       []string `json:"synonyms,omitempty"`
	CategoryTags   []string `json:"category_tags,omitempty"`
	Equipment      []string `json:"equipment,omitempty"`
	PrimaryMuscles []string `json:"primary_muscles,omitempty"`
	Description    string   `json:"description,omitempty"`
	MediaRef       string   `json:"media_ref,omitempty"`
	Placeholder    bool     `json:"placeholder,omitempty"`
}

// MatchCandidate pairs a dictionary entry with the score and stage that
// produced it
type MatchCandidate struct {
	Entry  *ExerciseEntry `json:"entry"`
	Score  float64        `json:"score"`
	Method MatchMethod    `json:"method"`
}

// ResolutionResult is returned for every resolve call. Candidate is always
// populated; when Matched is false its entry is a synthetic placeholder
// carrying the original input text.
type ResolutionResult struct {
	Matched      bool             `json:"matched"`
	Candidate    MatchCandidate   `json:"candidate"`
	Alternatives []MatchCandidate `json:"alternatives,omitempty"`
}

// Prescription holds workout parameters extracted from free text.
// All fields are optional; nil means the pattern was not present.
type Prescription struct {
	Sets            *int     `json:"sets,omitempty"`
	Reps            *string  `json:"reps,omitempty"` // single value "8" or range "8-12"
	RestSeconds     *int     `json:"rest_seconds,omitempty"`
	IntensityLabel  *string  `json:"intensity_label,omitempty"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
}

// ResolutionRecord is a persisted log entry for a single match decision
type ResolutionRecord struct {
	ID          int64       `json:"id" db:"id"`
	Input       string      `json:"input" db:"input"`
	MatchedSlug string      `json:"matched_slug" db:"matched_slug"`
	Method      MatchMethod `json:"method" db:"method"`
	Score       float64     `json:"score" db:"score"`
	Matched     bool        `json:"matched" db:"matched"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

// AliasOverride represents a user-confirmed alias correction
type AliasOverride struct {
	ID           int64     `json:"id" db:"id"`
	Alias        string    `json:"alias" db:"alias"`
	ExerciseSlug string    `json:"exercise_slug" db:"exercise_slug"`
	UseCount     int       `json:"use_count" db:"use_count"`
	LastUsed     time.Time `json:"last_used" db:"last_used"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
