package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// envelope is the wire wrapper around every API payload.
// Some deployments return success and numeric fields as strings, so the
// boundary types below normalize them before any logic runs against them.
type envelope struct {
	Success FlexBool        `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// FlexBool is a bool that also accepts the string forms "true"/"false"/"1"/"0"
// seen in API responses.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch s {
	case "true", "1":
		*b = true
		return nil
	case "false", "0", "null":
		*b = false
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot parse %q as bool", s)
	}
	v, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(str)))
	if err != nil {
		return fmt.Errorf("cannot parse %q as bool", str)
	}
	*b = FlexBool(v)
	return nil
}

// Bool returns the plain bool value.
func (b FlexBool) Bool() bool { return bool(b) }

// FlexInt is an int64 that also accepts quoted numbers ("42") from the wire.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*i = 0
		return nil
	}
	if len(s) > 1 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("cannot parse %q as int", s)
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot parse %q as int", s)
	}
	*i = FlexInt(v)
	return nil
}

// Int returns the plain int value.
func (i FlexInt) Int() int { return int(i) }

// decodeEnvelope unwraps an API response body into out. A success=false
// envelope becomes an *APIError; an undecodable body wraps ErrMalformedResponse.
func decodeEnvelope(body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if !env.Success.Bool() {
		msg := env.Error
		if msg == "" {
			msg = "request rejected"
		}
		return &APIError{
			StatusCode: http.StatusOK,
			ErrorClass: ErrorClassClient,
			Message:    msg,
		}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrMalformedResponse, err)
	}
	return nil
}
