package handlers

import (
	"exercise-resolver/pkg/models"
)

// Store defines the database operations used by the HTTP handlers
//
//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks
type Store interface {
	// Resolution telemetry
	CreateResolutionRecord(record *models.ResolutionRecord) error
	ListResolutionRecords(limit, offset int) ([]*models.ResolutionRecord, error)
	GetResolutionStats() (map[string]int, error)

	// User-confirmed alias corrections
	GetAliasOverride(alias string) (*models.AliasOverride, error)
	CreateOrBumpAliasOverride(alias, exerciseSlug string) (*models.AliasOverride, error)
	ListAliasOverrides(limit int) ([]*models.AliasOverride, error)
}
