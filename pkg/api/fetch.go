package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/pmiguel/workers-sdk/pkg/pagination"
)

// GraphQLResource is the fixed path of the analytics GraphQL endpoint.
const GraphQLResource = "/graphql"

// Fetcher couples a transport with the friendly-error handlers consulted
// when an envelope reports failure. It holds no per-call state; every fetch
// is independent.
type Fetcher struct {
	transport Transport
	friendly  []FriendlyErrorFunc
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithFriendlyErrors replaces the default friendly-error handler chain.
func WithFriendlyErrors(fns ...FriendlyErrorFunc) FetcherOption {
	return func(f *Fetcher) {
		f.friendly = fns
	}
}

// NewFetcher builds a Fetcher over the given transport with the default
// friendly-error handler.
func NewFetcher(transport Transport, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		transport: transport,
		friendly:  []FriendlyErrorFunc{DefaultFriendlyError},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) fetchEnvelope(ctx context.Context, resource string, init RequestInit, params []QueryParam) (*Envelope, error) {
	raw, err := f.transport.Do(ctx, resource, init, params)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(resource, raw)
}

// FetchResult performs one request and unwraps the envelope into its result.
func FetchResult[T any](ctx context.Context, f *Fetcher, resource string, init RequestInit, params ...QueryParam) (T, error) {
	var zero T
	env, err := f.fetchEnvelope(ctx, resource, init, params)
	if err != nil {
		return zero, err
	}
	if !env.Success {
		return zero, errorFromEnvelope(resource, env, f.friendly)
	}
	if len(bytes.TrimSpace(env.Result)) == 0 {
		// Some mutations report success with no result payload.
		return zero, nil
	}
	var result T
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return zero, fmt.Errorf("decode result from %s: %w", resource, err)
	}
	return result, nil
}

// FetchGraphQLResult posts to the GraphQL endpoint and decodes the body
// directly, with no envelope unwrapping. The method is always POST; the
// endpoint does not accept GET.
func FetchGraphQLResult[T any](ctx context.Context, f *Fetcher, init RequestInit) (T, error) {
	var zero T
	init.Method = http.MethodPost
	raw, err := f.transport.Do(ctx, GraphQLResource, init, nil)
	if err != nil {
		return zero, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return zero, fmt.Errorf("request to the API (%s) failed", GraphQLResource)
	}
	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return zero, fmt.Errorf("decode result from %s: %w", GraphQLResource, err)
	}
	return result, nil
}

// FetchListResult accumulates a cursor-paginated listing. Pages are fetched
// sequentially and their items appended in arrival order. The first failed
// page aborts the whole listing; no partial results are returned.
func FetchListResult[T any](ctx context.Context, f *Fetcher, resource string, init RequestInit, params ...QueryParam) ([]T, error) {
	results := []T{}
	cursor := ""
	for {
		query := params
		if cursor != "" {
			query = append(append([]QueryParam{}, params...), QueryParam{Key: "cursor", Value: cursor})
		}
		env, err := f.fetchEnvelope(ctx, resource, init, query)
		if err != nil {
			return nil, err
		}
		if !env.Success {
			return nil, errorFromEnvelope(resource, env, f.friendly)
		}

		if len(bytes.TrimSpace(env.Result)) > 0 {
			var items []T
			if err := json.Unmarshal(env.Result, &items); err != nil {
				return nil, fmt.Errorf("decode result from %s: %w", resource, err)
			}
			results = append(results, items...)
		}

		info, err := pagination.ParseCursorInfo(env.ResultInfo)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", resource, err)
		}
		if !info.HasMorePages() {
			return results, nil
		}
		cursor = strings.TrimSpace(info.Cursor)
	}
}

// FetchPagedListResult accumulates a page-numbered listing. The page
// parameter is always set explicitly, starting at 1, and the loop continues
// while page*per_page < total_count.
func FetchPagedListResult[T any](ctx context.Context, f *Fetcher, resource string, init RequestInit, params ...QueryParam) ([]T, error) {
	results := []T{}
	page := 1
	for {
		withPage := append(append([]QueryParam{}, params...), QueryParam{Key: "page", Value: strconv.Itoa(page)})
		env, err := f.fetchEnvelope(ctx, resource, init, withPage)
		if err != nil {
			return nil, err
		}
		if !env.Success {
			return nil, errorFromEnvelope(resource, env, f.friendly)
		}

		if len(bytes.TrimSpace(env.Result)) > 0 {
			var items []T
			if err := json.Unmarshal(env.Result, &items); err != nil {
				return nil, fmt.Errorf("decode result from %s: %w", resource, err)
			}
			results = append(results, items...)
		}

		info, err := pagination.ParsePageInfo(env.ResultInfo)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", resource, err)
		}
		if info == nil || !info.HasMorePages() {
			return results, nil
		}
		page++
	}
}

// FetchScriptContent retrieves a script body. Multipart responses hold one
// part per module file; their values are concatenated in part order, joined
// by newlines. Any other content type is returned verbatim.
func FetchScriptContent(ctx context.Context, f *Fetcher, resource string, init RequestInit, params ...QueryParam) (string, error) {
	resp, err := f.transport.DoRaw(ctx, resource, init, params)
	if err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart") {
		return string(resp.Body), nil
	}

	_, mediaParams, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("parse content type from %s: %w", resource, err)
	}
	boundary := mediaParams["boundary"]
	if boundary == "" {
		return "", fmt.Errorf("multipart response from %s has no boundary", resource)
	}

	reader := multipart.NewReader(bytes.NewReader(resp.Body), boundary)
	var parts []string
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read multipart response from %s: %w", resource, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(part); err != nil {
			return "", fmt.Errorf("read multipart response from %s: %w", resource, err)
		}
		parts = append(parts, buf.String())
	}
	return strings.Join(parts, "\n"), nil
}
