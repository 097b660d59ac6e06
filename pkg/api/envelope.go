package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the response wrapper used by every JSON endpoint of the API.
// When Success is false, Result must not be consumed.
type Envelope struct {
	Success    bool            `json:"success"`
	Result     json.RawMessage `json:"result"`
	Errors     []ResponseError `json:"errors"`
	Messages   []string        `json:"messages"`
	ResultInfo json.RawMessage `json:"result_info"`
}

// ResponseError is one structured error entry in an envelope. Code 0 means
// the API did not supply a numeric code. ErrorChain carries causally-linked
// errors of arbitrary depth.
type ResponseError struct {
	Code       int             `json:"code,omitempty"`
	Message    string          `json:"message"`
	ErrorChain []ResponseError `json:"error_chain,omitempty"`
}

func decodeEnvelope(resource string, raw json.RawMessage) (*Envelope, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("empty response from %s", resource)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", resource, err)
	}
	return &env, nil
}
