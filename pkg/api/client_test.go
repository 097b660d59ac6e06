package api

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmiguel/workers-sdk/pkg/config"
	"github.com/pmiguel/workers-sdk/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(context.Background(), config.APIConfig{BaseURL: "https://api.example.com"}, testLogger(), nil)
	require.ErrorIs(t, err, errTokenRequired)
}

func TestNewClientRequiresLogger(t *testing.T) {
	_, err := NewClient(context.Background(), config.APIConfig{Token: "t"}, nil, nil)
	require.ErrorIs(t, err, errLoggerRequired)
}

func TestNewClientTrimsBaseURL(t *testing.T) {
	c, err := NewClient(context.Background(), config.APIConfig{
		Token:   " token ",
		BaseURL: "https://api.example.com/client/v4/ ",
		Timeout: time.Second,
	}, testLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/client/v4", c.baseURL)
	assert.Equal(t, "token", c.token)
}

func TestRequestURLPreservesParamOrder(t *testing.T) {
	c := &Client{baseURL: "https://api.example.com"}

	got := c.requestURL("/accounts/abc/queues", []QueryParam{
		{Key: "per_page", Value: "10"},
		{Key: "cursor", Value: "a b/c"},
		{Key: "page", Value: "2"},
	})
	assert.Equal(t, "https://api.example.com/accounts/abc/queues?per_page=10&cursor=a+b%2Fc&page=2", got)

	// No params, no question mark.
	assert.Equal(t, "https://api.example.com/zones", c.requestURL("/zones", nil))
}

func TestRedactQueryValue(t *testing.T) {
	assert.Equal(t, "[REDACTED]", redactQueryValue("api_token", "secret-value"))
	assert.Equal(t, "[REDACTED]", redactQueryValue("signing_key", "k"))
	assert.Equal(t, "2", redactQueryValue("page", "2"))
}
