// Package prescription extracts structured workout parameters (sets, reps,
// rest, intensity, duration, distance) from free-form exercise text. Parsing
// is best-effort: absent patterns leave the corresponding field nil and no
// input ever produces an error.
package prescription

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"exercise-resolver/pkg/models"
)

var (
	setsRepsPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*[x×]\s*(\d{1,3})(?:\s*[-–]\s*(\d{1,3}))?\b`)
	rpePattern      = regexp.MustCompile(`(?i)@?\s*\brpe\s*(\d{1,2}(?:\.\d)?)\b`)
	percentPattern  = regexp.MustCompile(`@\s*(\d{1,3})\s*%`)
	restPattern     = regexp.MustCompile(`(?i)\brest\s*:?\s*(\d{1,3})\s*(s\b|secs?\b|seconds?\b|m\b|mins?\b|minutes?\b)?`)
	durationPattern = regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d)?)\s*(mins?|minutes?)\b`)
	distancePattern = regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d{1,2})?)\s*(km\b|kms\b|kilometers?\b|k\b)`)
)

// Parse extracts prescription fields from raw text. Each field is filled by
// the first occurrence of its pattern; fields whose pattern is absent stay
// nil.
func Parse(text string) models.Prescription {
	var p models.Prescription

	if m := setsRepsPattern.FindStringSubmatch(text); m != nil {
		if sets, err := strconv.Atoi(m[1]); err == nil {
			p.Sets = &sets
		}
		reps := m[2]
		if m[3] != "" {
			reps = m[2] + "-" + m[3]
		}
		p.Reps = &reps
	}

	// RPE wins over a bare percentage when both appear
	if m := rpePattern.FindStringSubmatch(text); m != nil {
		label := "RPE " + m[1]
		p.IntensityLabel = &label
	} else if m := percentPattern.FindStringSubmatch(text); m != nil {
		label := m[1] + "%"
		p.IntensityLabel = &label
	}

	// Cut the rest clause out before scanning for standalone durations so
	// "rest 2 min" is not also read as a 2 minute duration
	remaining := text
	if loc := restPattern.FindStringSubmatchIndex(text); loc != nil {
		m := restPattern.FindStringSubmatch(text)
		if value, err := strconv.Atoi(m[1]); err == nil {
			seconds := value
			if strings.HasPrefix(strings.ToLower(m[2]), "m") {
				seconds = value * 60
			}
			p.RestSeconds = &seconds
		}
		remaining = text[:loc[0]] + " " + text[loc[1]:]
	}

	if m := durationPattern.FindStringSubmatch(remaining); m != nil {
		if minutes, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.DurationMinutes = &minutes
		}
	}

	if m := distancePattern.FindStringSubmatch(remaining); m != nil {
		if km, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.DistanceKm = &km
		}
	}

	return p
}

// fieldAliases enumerates the accepted field-name spellings seen in AI
// payloads in priority order, mapped to the canonical prescription field.
// Ordered so that coercion stays deterministic when a payload carries
// several aliases of the same field.
var fieldAliases = []struct {
	key       string
	canonical string
}{
	{"sets", "sets"},
	{"set", "sets"},
	{"num_sets", "sets"},
	{"numsets", "sets"},
	{"reps", "reps"},
	{"rep", "reps"},
	{"repetitions", "reps"},
	{"rep_range", "reps"},
	{"reprange", "reps"},
	{"rest_seconds", "rest_seconds"},
	{"rest_sec", "rest_seconds"},
	{"restseconds", "rest_seconds"},
	{"rest", "rest_seconds"},
	{"intensity_label", "intensity_label"},
	{"intensity", "intensity_label"},
	{"rpe", "rpe"},
	{"duration_minutes", "duration_minutes"},
	{"duration", "duration_minutes"},
	{"minutes", "duration_minutes"},
	{"distance_km", "distance_km"},
	{"distance", "distance_km"},
	{"km", "distance_km"},
}

// CoerceFields maps an untyped payload (e.g. decoded AI JSON) onto a
// Prescription using the enumerated field-alias table. Values that cannot be
// coerced to the field's type are skipped rather than reported as errors.
// Earlier aliases in the table win when a payload carries several spellings
// of the same field.
func CoerceFields(payload map[string]any) models.Prescription {
	var p models.Prescription

	normalized := make(map[string]any, len(payload))
	for key, value := range payload {
		normalized[strings.ToLower(strings.TrimSpace(key))] = value
	}

	for _, alias := range fieldAliases {
		value, ok := normalized[alias.key]
		if !ok {
			continue
		}

		switch alias.canonical {
		case "sets":
			if p.Sets == nil {
				p.Sets = coerceInt(value)
			}
		case "reps":
			if p.Reps == nil {
				p.Reps = coerceString(value)
			}
		case "rest_seconds":
			if p.RestSeconds == nil {
				p.RestSeconds = coerceInt(value)
			}
		case "intensity_label":
			if p.IntensityLabel == nil {
				p.IntensityLabel = coerceString(value)
			}
		case "rpe":
			if p.IntensityLabel == nil {
				if n := coerceFloat(value); n != nil {
					label := "RPE " + strconv.FormatFloat(*n, 'f', -1, 64)
					p.IntensityLabel = &label
				}
			}
		case "duration_minutes":
			if p.DurationMinutes == nil {
				p.DurationMinutes = coerceFloat(value)
			}
		case "distance_km":
			if p.DistanceKm == nil {
				p.DistanceKm = coerceFloat(value)
			}
		}
	}

	return p
}

// coerceInt converts a numeric or numeric-string value to *int, nil on failure
func coerceInt(value any) *int {
	switch v := value.(type) {
	case int:
		return &v
	case int64:
		n := int(v)
		return &n
	case float64:
		n := int(v)
		if float64(n) != v {
			return nil
		}
		return &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return &n
		}
	}
	return nil
}

// coerceFloat converts a numeric or numeric-string value to *float64, nil on
// failure
func coerceFloat(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

// coerceString converts strings and numbers to *string, nil for anything else
func coerceString(value any) *string {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		return &trimmed
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	case int:
		s := fmt.Sprintf("%d", v)
		return &s
	}
	return nil
}
