// Package dictionary provides the immutable canonical exercise catalog and
// its alias index
package dictionary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"exercise-resolver/pkg/models"
	"exercise-resolver/pkg/textnorm"
)

//go:embed catalog.json
var defaultCatalog []byte

type catalogFile struct {
	Exercises []*models.ExerciseEntry `json:"exercises"`
}

// Index is a read-only alias index over the exercise catalog. It is built
// once at startup and safe for concurrent use afterwards. Entry order is the
// catalog file order, which callers rely on for deterministic tie-breaking.
type Index struct {
	entries    []*models.ExerciseEntry
	bySlug     map[string]*models.ExerciseEntry
	byAlias    map[string]*models.ExerciseEntry
	byCategory map[string][]*models.ExerciseEntry
	categories []string
}

// Load builds the index from a catalog JSON file, or from the embedded
// default catalog when path is empty.
func Load(path string, strict bool) (*Index, error) {
	data := defaultCatalog
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = fileData
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Exercises) == 0 {
		return nil, fmt.Errorf("catalog contains no exercises")
	}

	return New(file.Exercises, strict)
}

// New builds the index from already-loaded entries, preserving their order.
// A duplicate normalized alias across two distinct entries is a
// data-integrity defect: in strict mode construction fails, otherwise the
// first-registered entry keeps the alias and the duplicate is logged.
func New(entries []*models.ExerciseEntry, strict bool) (*Index, error) {
	idx := &Index{
		entries:    make([]*models.ExerciseEntry, 0, len(entries)),
		bySlug:     make(map[string]*models.ExerciseEntry, len(entries)),
		byAlias:    make(map[string]*models.ExerciseEntry),
		byCategory: make(map[string][]*models.ExerciseEntry),
	}

	for _, entry := range entries {
		if entry.Slug == "" {
			return nil, fmt.Errorf("catalog entry %q has no slug", entry.CanonicalName)
		}
		if entry.CanonicalName == "" {
			return nil, fmt.Errorf("catalog entry %q has no canonical name", entry.Slug)
		}
		if _, dup := idx.bySlug[entry.Slug]; dup {
			return nil, fmt.Errorf("duplicate catalog slug %q", entry.Slug)
		}
		idx.bySlug[entry.Slug] = entry
		idx.entries = append(idx.entries, entry)

		aliases := append([]string{entry.CanonicalName}, entry.Synonyms...)
		for _, alias := range aliases {
			normalized := textnorm.Normalize(alias)
			if normalized == "" {
				continue
			}

			existing, taken := idx.byAlias[normalized]
			if !taken {
				idx.byAlias[normalized] = entry
				continue
			}
			if existing == entry {
				continue
			}
			if strict {
				return nil, fmt.Errorf("alias %q registered by both %q and %q", normalized, existing.Slug, entry.Slug)
			}
			slog.Warn("Duplicate normalized alias, keeping first-registered entry",
				"alias", normalized,
				"kept", existing.Slug,
				"dropped", entry.Slug)
		}

		for _, tag := range entry.CategoryTags {
			normalized := textnorm.Normalize(tag)
			if normalized == "" {
				continue
			}
			if _, known := idx.byCategory[normalized]; !known {
				idx.categories = append(idx.categories, normalized)
			}
			idx.byCategory[normalized] = append(idx.byCategory[normalized], entry)
		}
	}

	return idx, nil
}

// LookupExact returns the entry whose normalized canonical name or synonym
// equals the normalized query, or nil when no alias matches.
func (idx *Index) LookupExact(query string) *models.ExerciseEntry {
	normalized := textnorm.Normalize(query)
	if normalized == "" {
		return nil
	}
	return idx.byAlias[normalized]
}

// BySlug returns the entry with the given slug, or nil
func (idx *Index) BySlug(slug string) *models.ExerciseEntry {
	return idx.bySlug[slug]
}

// Entries returns all entries in catalog order. The returned slice is shared
// and must not be modified.
func (idx *Index) Entries() []*models.ExerciseEntry {
	return idx.entries
}

// LookupByCategory returns the entries carrying the given category tag in
// catalog order; the first entry acts as the category's representative
// exercise.
func (idx *Index) LookupByCategory(tag string) []*models.ExerciseEntry {
	return idx.byCategory[textnorm.Normalize(tag)]
}

// Categories returns all known category tags in first-seen catalog order
func (idx *Index) Categories() []string {
	return idx.categories
}

// Len returns the number of catalog entries
func (idx *Index) Len() int {
	return len(idx.entries)
}
