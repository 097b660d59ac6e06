package scripts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pmiguel/workers-sdk/pkg/api"
)

var errAccountIDRequired = errors.New("account id is required")

// Script is one deployed worker script.
type Script struct {
	ID         string `json:"id"`
	Etag       string `json:"etag,omitempty"`
	CreatedOn  string `json:"created_on,omitempty"`
	ModifiedOn string `json:"modified_on,omitempty"`
}

// AnalyticsQuery is a GraphQL request against the analytics endpoint.
type AnalyticsQuery struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// AnalyticsResult is the decoded GraphQL response body.
type AnalyticsResult struct {
	Data   json.RawMessage  `json:"data"`
	Errors []AnalyticsError `json:"errors,omitempty"`
}

type AnalyticsError struct {
	Message string `json:"message"`
}

// Client exposes worker script operations.
type Client struct {
	fetcher   *api.Fetcher
	accountID string
}

func NewClient(fetcher *api.Fetcher, accountID string) (*Client, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, errAccountIDRequired
	}
	return &Client{fetcher: fetcher, accountID: accountID}, nil
}

func (c *Client) base() string {
	return fmt.Sprintf("/accounts/%s/workers/scripts", c.accountID)
}

// List returns every script under the account, following cursors until the
// final page.
func (c *Client) List(ctx context.Context) ([]Script, error) {
	return api.FetchListResult[Script](ctx, c.fetcher, c.base(), api.RequestInit{})
}

// Content downloads a script's source. Module scripts come back as multipart
// bodies with one part per file; the parts are stitched together in order.
func (c *Client) Content(ctx context.Context, scriptName string) (string, error) {
	return api.FetchScriptContent(ctx, c.fetcher, c.base()+"/"+scriptName+"/content", api.RequestInit{})
}

// Analytics runs a GraphQL query against the analytics endpoint.
func (c *Client) Analytics(ctx context.Context, query AnalyticsQuery) (*AnalyticsResult, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode analytics query: %w", err)
	}

	result, err := api.FetchGraphQLResult[AnalyticsResult](ctx, c.fetcher, api.RequestInit{
		Method: http.MethodPost,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
