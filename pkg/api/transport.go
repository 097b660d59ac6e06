package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// RequestInit describes one outgoing request. A zero Method means GET.
type RequestInit struct {
	Method  string
	Headers map[string]string
	Body    []byte
}

// QueryParam is one query-string pair. Parameters are carried as an ordered
// slice rather than a map: the order they were supplied in is the order they
// appear on the wire.
type QueryParam struct {
	Key   string
	Value string
}

// RawResponse is the undecoded result of one round trip, for callers that
// need to inspect headers or non-JSON bodies.
type RawResponse struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Transport performs a single HTTP round trip against the API. Do returns
// the response body for JSON endpoints; DoRaw returns the full response for
// endpoints whose bodies are not JSON envelopes. Neither retries.
type Transport interface {
	Do(ctx context.Context, resource string, init RequestInit, params []QueryParam) (json.RawMessage, error)
	DoRaw(ctx context.Context, resource string, init RequestInit, params []QueryParam) (*RawResponse, error)
}
