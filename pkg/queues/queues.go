package queues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pmiguel/workers-sdk/pkg/api"
	"github.com/pmiguel/workers-sdk/pkg/validate"
)

var errAccountIDRequired = errors.New("account id is required")

// Queue is one message queue under an account.
type Queue struct {
	ID                  string `json:"queue_id"`
	Name                string `json:"queue_name"`
	CreatedOn           string `json:"created_on,omitempty"`
	ModifiedOn          string `json:"modified_on,omitempty"`
	ProducersTotalCount int    `json:"producers_total_count,omitempty"`
	ConsumersTotalCount int    `json:"consumers_total_count,omitempty"`
}

// Consumer is one registered consumer of a queue.
type Consumer struct {
	Service         string           `json:"service,omitempty"`
	Environment     string           `json:"environment,omitempty"`
	DeadLetterQueue string           `json:"dead_letter_queue,omitempty"`
	Settings        ConsumerSettings `json:"settings"`
}

type ConsumerSettings struct {
	BatchSize     int `json:"batch_size,omitempty"`
	MaxRetries    int `json:"max_retries,omitempty"`
	MaxWaitTimeMS int `json:"max_wait_time_ms,omitempty"`
}

// CreateParams are the inputs for creating a queue.
type CreateParams struct {
	Name string `json:"queue_name" validate:"required,min=1,max=63"`
}

// Client exposes queue management operations.
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
	return fmt.Sprintf("/accounts/%s/queues", c.accountID)
}

// Create provisions a new queue. Parameters are validated locally before any
// request is made.
func (c *Client) Create(ctx context.Context, params CreateParams) (*Queue, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode create params: %w", err)
	}

	q, err := api.FetchResult[Queue](ctx, c.fetcher, c.base(), api.RequestInit{
		Method: http.MethodPost,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Get fetches one queue by id.
func (c *Client) Get(ctx context.Context, queueID string) (*Queue, error) {
	q, err := api.FetchResult[Queue](ctx, c.fetcher, c.base()+"/"+queueID, api.RequestInit{})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns every queue under the account, walking all pages.
func (c *Client) List(ctx context.Context) ([]Queue, error) {
	return api.FetchPagedListResult[Queue](ctx, c.fetcher, c.base(), api.RequestInit{})
}

// Delete removes a queue.
func (c *Client) Delete(ctx context.Context, queueID string) error {
	_, err := api.FetchResult[struct{}](ctx, c.fetcher, c.base()+"/"+queueID, api.RequestInit{
		Method: http.MethodDelete,
	})
	return err
}

// ListConsumers returns every consumer of a queue, walking all pages.
func (c *Client) ListConsumers(ctx context.Context, queueID string) ([]Consumer, error) {
	return api.FetchPagedListResult[Consumer](ctx, c.fetcher, c.base()+"/"+queueID+"/consumers", api.RequestInit{})
}
