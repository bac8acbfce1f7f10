package api

import (
	"github.com/leading2lean/lesgo/pkg/client"
)

// Wire models. Several deployments return numeric and boolean fields as
// strings, so the flexible boundary types from pkg/client absorb both forms.

// Site is a manufacturing site.
type Site struct {
	ID       client.FlexInt  `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"description"`
	Timezone string          `json:"timezone,omitempty"`
	Active   client.FlexBool `json:"active,omitempty"`
}

// Area is a physical area within a site.
type Area struct {
	ID     client.FlexInt  `json:"id"`
	Site   client.FlexInt  `json:"site"`
	Code   string          `json:"code"`
	Name   string          `json:"description"`
	Active client.FlexBool `json:"active,omitempty"`
}

// Line is a production line within an area.
type Line struct {
	ID     client.FlexInt  `json:"id"`
	Site   client.FlexInt  `json:"site"`
	Area   client.FlexInt  `json:"area"`
	Code   string          `json:"code"`
	Name   string          `json:"description"`
	Active client.FlexBool `json:"active,omitempty"`
}

// Machine is a piece of equipment on a line.
type Machine struct {
	ID        client.FlexInt  `json:"id"`
	Site      client.FlexInt  `json:"site"`
	Code      string          `json:"code"`
	LineCode  string          `json:"linecode,omitempty"`
	ShortName string          `json:"shortname,omitempty"`
	Active    client.FlexBool `json:"active,omitempty"`
}

// Dispatch is a maintenance/andon dispatch event.
type Dispatch struct {
	ID               client.FlexInt  `json:"id"`
	DispatchNumber   client.FlexInt  `json:"dispatchnumber"`
	DispatchTypeCode string          `json:"dispatchtypecode,omitempty"`
	Description      string          `json:"description"`
	MachineCode      string          `json:"machinecode,omitempty"`
	TradeCode        string          `json:"tradecode,omitempty"`
	Completed        client.FlexBool `json:"completed,omitempty"`
	CreatedAt        string          `json:"created,omitempty"`
	ClosedAt         string          `json:"completedtime,omitempty"`
}

// ClockEvent is the result of an operator clock-in or clock-out.
type ClockEvent struct {
	ID        client.FlexInt  `json:"id"`
	Site      client.FlexInt  `json:"site"`
	Badge     string          `json:"badge,omitempty"`
	ClockIn   string          `json:"clock_in_time,omitempty"`
	ClockOut  string          `json:"clock_out_time,omitempty"`
	LineCode  string          `json:"linecode,omitempty"`
	Confirmed client.FlexBool `json:"confirmed,omitempty"`
}

// ProductionRecord is a recorded pitch of actual/scrap production counts.
type ProductionRecord struct {
	ID            client.FlexInt `json:"id"`
	Site          client.FlexInt `json:"site"`
	LineCode      string         `json:"linecode"`
	ProductCode   string         `json:"productcode,omitempty"`
	Actual        client.FlexInt `json:"actual"`
	Scrap         client.FlexInt `json:"scrap,omitempty"`
	OperatorCount client.FlexInt `json:"operator_count,omitempty"`
	Start         string         `json:"start,omitempty"`
	End           string         `json:"end,omitempty"`
}
