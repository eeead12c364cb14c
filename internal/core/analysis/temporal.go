package analysis

import (
	"errors"
	"strings"
	"time"

	"github.com/agenthands/attackmap/internal/core/model"
)

// DateLayout is day/month/year; single-digit days and months are accepted.
const DateLayout = "2/1/2006"

type TemporalRange struct {
	Available    bool     `json:"available" yaml:"available"`
	EarliestDate string   `json:"earliest_date,omitempty" yaml:"earliest_date,omitempty"`
	LatestDate   string   `json:"latest_date,omitempty" yaml:"latest_date,omitempty"`
	Errors       []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ComputeTemporalRange finds the earliest and latest creation date. Any
// unparsable date makes the range unavailable; the returned error joins one
// *DateParseError per bad record.
func ComputeTemporalRange(records []model.MappingRecord) (TemporalRange, error) {
	var (
		res              TemporalRange
		errs             []error
		earliest, latest time.Time
		seen             bool
	)
	for i, r := range records {
		t, err := time.Parse(DateLayout, strings.TrimSpace(r.CreationDate))
		if err != nil {
			perr := &DateParseError{Row: i, Value: r.CreationDate, Err: err}
			errs = append(errs, perr)
			res.Errors = append(res.Errors, perr.Error())
			continue
		}
		if !seen || t.Before(earliest) {
			earliest = t
		}
		if !seen || t.After(latest) {
			latest = t
		}
		seen = true
	}
	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}
	if !seen {
		return res, nil
	}
	res.Available = true
	res.EarliestDate = earliest.Format(time.DateOnly)
	res.LatestDate = latest.Format(time.DateOnly)
	return res, nil
}
