package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CreateDispatchRequest holds the fields for opening a dispatch against a
// machine.
type CreateDispatchRequest struct {
	SiteID           int
	DispatchTypeCode string
	Description      string
	MachineCode      string
	TradeCode        string
}

// CreateDispatch opens a new dispatch event.
func (a *API) CreateDispatch(ctx context.Context, req CreateDispatchRequest) (*Dispatch, error) {
	if req.DispatchTypeCode == "" {
		return nil, fmt.Errorf("dispatch type code is required")
	}
	if req.MachineCode == "" {
		return nil, fmt.Errorf("machine code is required")
	}

	form := url.Values{
		"site":             {strconv.Itoa(req.SiteID)},
		"dispatchtypecode": {req.DispatchTypeCode},
		"description":      {req.Description},
		"machinecode":      {req.MachineCode},
	}
	if req.TradeCode != "" {
		form.Set("tradecode", req.TradeCode)
	}

	var dispatch Dispatch
	if err := a.client.PostForm(ctx, "dispatches/open", form, &dispatch); err != nil {
		return nil, err
	}

	a.logger.Info().
		Int("dispatch_id", dispatch.ID.Int()).
		Str("machine", req.MachineCode).
		Msg("Dispatch opened")

	return &dispatch, nil
}

// CloseDispatch closes an open dispatch by id.
func (a *API) CloseDispatch(ctx context.Context, siteID, dispatchID int) (*Dispatch, error) {
	form := url.Values{
		"site": {strconv.Itoa(siteID)},
		"id":   {strconv.Itoa(dispatchID)},
	}

	var dispatch Dispatch
	if err := a.client.PostForm(ctx, "dispatches/close", form, &dispatch); err != nil {
		return nil, err
	}

	a.logger.Info().
		Int("dispatch_id", dispatchID).
		Msg("Dispatch closed")

	return &dispatch, nil
}

// ListDispatches returns one page of a site's dispatches.
func (a *API) ListDispatches(ctx context.Context, siteID, limit, offset int) ([]Dispatch, error) {
	return listPage[Dispatch](ctx, a, "dispatches", siteQuery(siteID), limit, offset)
}
