package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"litport/internal/domain"
)

// Save writes the outcome of a port run to the configured JSON report.
func (s *JSONStorage) Save(results []domain.PortResult, duration time.Duration, legacyCleaned bool) error {
	return s.SaveReport(BuildReport(results, duration, legacyCleaned))
}

// SaveReport writes an already built report, e.g. after failures were marked resolved.
func (s *JSONStorage) SaveReport(report *domain.PortReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	path := s.cfg.GetReportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Load reads the last port report from the configured JSON file.
func (s *JSONStorage) Load() (*domain.PortReport, error) {
	path := s.cfg.GetReportPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.PortReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}

// BuildReport summarises port results
func BuildReport(results []domain.PortResult, duration time.Duration, legacyCleaned bool) *domain.PortReport {
	report := &domain.PortReport{
		Meta: domain.PortReportMeta{
			TotalTests:      len(results),
			LegacyCleaned:   legacyCleaned,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: make([]domain.PortRecord, 0, len(results)),
	}
	for _, r := range results {
		if r.Success {
			report.Meta.PortedTests++
		} else {
			report.Meta.FailedTests++
		}
		report.Details = append(report.Details, domain.PortRecord{
			Name:       r.Name,
			Source:     r.Source,
			OutputPath: r.OutputPath,
			Category:   r.Category.String(),
			XFail:      r.XFail,
			Success:    r.Success,
			Cause:      r.Cause(),
		})
	}
	return report
}
