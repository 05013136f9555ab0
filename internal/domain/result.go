package domain

// PortResult represents the outcome of porting a single legacy test
type PortResult struct {
	Source     string   // Path to the legacy test file
	Name       string   // Test name (base name of Source)
	OutputDir  string   // Directory the ported test was written to
	OutputPath string   // Full path of the ported test
	Category   Category // Category the test was ported as
	XFail      bool     // Whether an expected-failure marker was added
	Success    bool     // Whether the ported file was written
	Err        error    // Why porting failed
}

// Cause returns a human-readable failure cause, empty on success
func (r PortResult) Cause() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// PortReportMeta contains metadata about a port run
type PortReportMeta struct {
	TotalTests      int     `json:"total_tests"`
	PortedTests     int     `json:"ported_tests"`
	FailedTests     int     `json:"failed_tests"`
	LegacyCleaned   bool    `json:"legacy_cleaned"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// PortRecord is the persisted form of a PortResult
type PortRecord struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	OutputPath string `json:"output_path"`
	Category   string `json:"category"`
	XFail      bool   `json:"xfail,omitempty"`
	Success    bool   `json:"success"`
	Cause      string `json:"cause,omitempty"`
	Resolved   bool   `json:"resolved,omitempty"`
}

// PortReport is the complete output structure for a port run
type PortReport struct {
	Meta    PortReportMeta `json:"meta"`
	Details []PortRecord   `json:"details"`
}

// Failures returns the records of tests that could not be ported
func (r *PortReport) Failures() []PortRecord {
	var failed []PortRecord
	for _, i := range r.FailureIndexes() {
		failed = append(failed, r.Details[i])
	}
	return failed
}

// FailureIndexes returns the positions in Details of the failed records
func (r *PortReport) FailureIndexes() []int {
	var indexes []int
	for i, rec := range r.Details {
		if !rec.Success {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
