// Package handlers provides the JSON API handlers for the resolver service
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"exercise-resolver/internal/dictionary"
	"exercise-resolver/internal/resolver"
	"exercise-resolver/pkg/models"
	"exercise-resolver/pkg/prescription"
)

const (
	maxBatchItems    = 100
	batchConcurrency = 8

	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Handlers contains all HTTP handlers and their dependencies
type Handlers struct {
	store    Store
	dict     *dictionary.Index
	resolver *resolver.Resolver
	logger   *slog.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(store Store, dict *dictionary.Index, res *resolver.Resolver) *Handlers {
	return &Handlers{
		store:    store,
		dict:     dict,
		resolver: res,
		logger:   slog.Default(),
	}
}

type resolveRequest struct {
	Text      string   `json:"text"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type resolveResponse struct {
	Result       models.ResolutionResult `json:"result"`
	Prescription models.Prescription     `json:"prescription"`
}

// Resolve handles a single resolution request. A user-confirmed alias
// override wins over the matching pipeline; every decision is recorded to
// the resolution log.
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.resolveOne(req.Text, req.Threshold)
	h.recordResolution(req.Text, result)

	h.writeJSON(w, http.StatusOK, resolveResponse{
		Result:       result,
		Prescription: prescription.Parse(req.Text),
	})
}

type batchResolveRequest struct {
	Items     []string `json:"items"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type batchResolveResponse struct {
	Results []resolveResponse `json:"results"`
}

// ResolveBatch resolves a list of items with a bounded fan-out. Results keep
// the order of the request items.
func (h *Handlers) ResolveBatch(w http.ResponseWriter, r *http.Request) {
	var req batchResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		h.writeError(w, http.StatusBadRequest, "items is required")
		return
	}
	if len(req.Items) > maxBatchItems {
		h.writeError(w, http.StatusBadRequest, "too many items")
		return
	}

	results := make([]resolveResponse, len(req.Items))

	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency)
	for i, item := range req.Items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, item string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = resolveResponse{
				Result:       h.resolveOne(item, req.Threshold),
				Prescription: prescription.Parse(item),
			}
		}(i, item)
	}
	wg.Wait()

	for i, item := range req.Items {
		h.recordResolution(item, results[i].Result)
	}

	h.writeJSON(w, http.StatusOK, batchResolveResponse{Results: results})
}

type prescriptionRequest struct {
	Text   string         `json:"text"`
	Fields map[string]any `json:"fields,omitempty"`
}

// ParsePrescription extracts prescription fields from free text. When the
// request carries an untyped fields payload (e.g. decoded AI output), its
// coerced values win and text parsing fills the gaps.
func (h *Handlers) ParsePrescription(w http.ResponseWriter, r *http.Request) {
	var req prescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	parsed := prescription.Parse(req.Text)
	if len(req.Fields) > 0 {
		coerced := prescription.CoerceFields(req.Fields)
		parsed = mergePrescriptions(coerced, parsed)
	}

	h.writeJSON(w, http.StatusOK, parsed)
}

// ListExercises returns the full catalog in dictionary order
func (h *Handlers) ListExercises(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"exercises": h.dict.Entries(),
		"total":     h.dict.Len(),
	})
}

// GetExercise returns a single catalog entry by slug
func (h *Handlers) GetExercise(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	entry := h.dict.BySlug(slug)
	if entry == nil {
		h.writeError(w, http.StatusNotFound, "exercise not found")
		return
	}

	h.writeJSON(w, http.StatusOK, entry)
}

// ListCategories returns the known category tags in catalog order
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	type category struct {
		Tag            string `json:"tag"`
		Exercises      int    `json:"exercises"`
		Representative string `json:"representative"`
	}

	tags := h.dict.Categories()
	categories := make([]category, 0, len(tags))
	for _, tag := range tags {
		entries := h.dict.LookupByCategory(tag)
		categories = append(categories, category{
			Tag:            tag,
			Exercises:      len(entries),
			Representative: entries[0].Slug,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// History returns recent resolution log entries, newest first
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	records, err := h.store.ListResolutionRecords(limit, offset)
	if err != nil {
		h.logger.Error("Failed to list resolution records", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"history": records})
}

// Stats returns per-method resolution counts and catalog size
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetResolutionStats()
	if err != nil {
		h.logger.Error("Failed to get resolution stats", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"methods":    stats,
		"dictionary": h.dict.Len(),
	})
}

type confirmAliasRequest struct {
	Alias string `json:"alias"`
	Slug  string `json:"slug"`
}

// ConfirmAlias registers a user-confirmed "did you mean" correction so the
// alias resolves directly next time
func (h *Handlers) ConfirmAlias(w http.ResponseWriter, r *http.Request) {
	var req confirmAliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Alias == "" || req.Slug == "" {
		h.writeError(w, http.StatusBadRequest, "alias and slug are required")
		return
	}
	if h.dict.BySlug(req.Slug) == nil {
		h.writeError(w, http.StatusNotFound, "exercise not found")
		return
	}

	override, err := h.store.CreateOrBumpAliasOverride(req.Alias, req.Slug)
	if err != nil {
		h.logger.Error("Failed to save alias override", "alias", req.Alias, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, override)
}

// ListAliases returns the registered alias overrides ordered by use count
func (h *Handlers) ListAliases(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	overrides, err := h.store.ListAliasOverrides(limit)
	if err != nil {
		h.logger.Error("Failed to list alias overrides", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"aliases": overrides})
}

// Health reports service liveness
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveOne applies an alias override when one is registered, falling back
// to the matching pipeline
func (h *Handlers) resolveOne(text string, threshold *float64) models.ResolutionResult {
	override, err := h.store.GetAliasOverride(text)
	if err != nil {
		h.logger.Warn("Alias override lookup failed", "error", err)
	}
	if override != nil {
		if entry := h.dict.BySlug(override.ExerciseSlug); entry != nil {
			if _, err := h.store.CreateOrBumpAliasOverride(override.Alias, override.ExerciseSlug); err != nil {
				h.logger.Warn("Failed to bump alias override usage", "alias", override.Alias, "error", err)
			}
			return models.ResolutionResult{
				Matched: true,
				Candidate: models.MatchCandidate{
					Entry:  entry,
					Score:  1.0,
					Method: models.MethodExact,
				},
			}
		}
	}

	if threshold != nil {
		return h.resolver.ResolveWithThreshold(text, *threshold)
	}
	return h.resolver.Resolve(text)
}

// recordResolution appends to the resolution log, best effort
func (h *Handlers) recordResolution(input string, result models.ResolutionResult) {
	slug := ""
	if result.Matched && result.Candidate.Entry != nil {
		slug = result.Candidate.Entry.Slug
	}

	record := &models.ResolutionRecord{
		Input:       input,
		MatchedSlug: slug,
		Method:      result.Candidate.Method,
		Score:       result.Candidate.Score,
		Matched:     result.Matched,
		CreatedAt:   time.Now(),
	}

	if err := h.store.CreateResolutionRecord(record); err != nil {
		h.logger.Warn("Failed to record resolution", "input", input, "error", err)
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// mergePrescriptions fills nil fields of the primary prescription from the
// secondary one
func mergePrescriptions(primary, secondary models.Prescription) models.Prescription {
	if primary.Sets == nil {
		primary.Sets = secondary.Sets
	}
	if primary.Reps == nil {
		primary.Reps = secondary.Reps
	}
	if primary.RestSeconds == nil {
		primary.RestSeconds = secondary.RestSeconds
	}
	if primary.IntensityLabel == nil {
		primary.IntensityLabel = secondary.IntensityLabel
	}
	if primary.DurationMinutes == nil {
		primary.DurationMinutes = secondary.DurationMinutes
	}
	if primary.DistanceKm == nil {
		primary.DistanceKm = secondary.DistanceKm
	}
	return primary
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
