package formatter

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/entd-longdistance/converter"
	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
)

// Summary describes one cleaning run.
type Summary struct {
	RunID       string                `json:"run_id"`
	StartedAt   time.Time             `json:"started_at"`
	FinishedAt  time.Time             `json:"finished_at"`
	Inputs      []entd.FileInfo       `json:"inputs"`
	CacheHit    bool                  `json:"cache_hit"`
	Households  int                   `json:"households"`
	Persons     int                   `json:"persons"`
	Trips       int                   `json:"trips"`
	Diagnostics converter.Diagnostics `json:"diagnostics"`
	Outputs     []string              `json:"outputs"`
}

// NewSummary fills the row counts and diagnostics from a cleaning result.
func NewSummary(runID string, startedAt time.Time, inputs []entd.FileInfo, result *converter.Result) Summary {
	return Summary{
		RunID:       runID,
		StartedAt:   startedAt,
		Inputs:      inputs,
		Households:  len(result.Households),
		Persons:     len(result.Persons),
		Trips:       len(result.Trips),
		Diagnostics: result.Diagnostics,
	}
}

// WriteSummary serializes a run summary as indented JSON.
func WriteSummary(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(s), "encode summary")
}
