package storage

import (
	"time"

	"litport/internal/config"
	"litport/internal/domain"
)

// Storage persists and loads port run reports (e.g. for the fails command).
type Storage interface {
	Save(results []domain.PortResult, duration time.Duration, legacyCleaned bool) error
	Load() (*domain.PortReport, error)
	SaveReport(report *domain.PortReport) error
}

// JSONStorage stores reports in a JSON file under the configured report path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's report path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
