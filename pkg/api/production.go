package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// timeFormat is the wall-clock format the API expects for pitch boundaries.
const timeFormat = "2006-01-02 15:04:05"

// RecordProductionRequest holds the fields for recording one pitch of
// production counts against a line.
type RecordProductionRequest struct {
	SiteID        int
	LineCode      string
	ProductCode   string
	Actual        int
	Scrap         int
	OperatorCount int
	Start         time.Time
	End           time.Time
}

// RecordProduction records actual/scrap counts for a pitch.
func (a *API) RecordProduction(ctx context.Context, req RecordProductionRequest) (*ProductionRecord, error) {
	if req.LineCode == "" {
		return nil, fmt.Errorf("line code is required")
	}
	if req.Actual < 0 || req.Scrap < 0 {
		return nil, fmt.Errorf("counts must be non-negative")
	}
	if !req.Start.IsZero() && !req.End.IsZero() && req.End.Before(req.Start) {
		return nil, fmt.Errorf("pitch end precedes start")
	}

	form := url.Values{
		"site":     {strconv.Itoa(req.SiteID)},
		"linecode": {req.LineCode},
		"actual":   {strconv.Itoa(req.Actual)},
	}
	if req.ProductCode != "" {
		form.Set("productcode", req.ProductCode)
	}
	if req.Scrap > 0 {
		form.Set("scrap", strconv.Itoa(req.Scrap))
	}
	if req.OperatorCount > 0 {
		form.Set("operator_count", strconv.Itoa(req.OperatorCount))
	}
	if !req.Start.IsZero() {
		form.Set("start", req.Start.Format(timeFormat))
	}
	if !req.End.IsZero() {
		form.Set("end", req.End.Format(timeFormat))
	}

	var record ProductionRecord
	if err := a.client.PostForm(ctx, "pitchdetails/record_details", form, &record); err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("line", req.LineCode).
		Int("actual", req.Actual).
		Int("scrap", req.Scrap).
		Msg("Production recorded")

	return &record, nil
}
