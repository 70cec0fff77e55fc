package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"basegraph.app/hubsync/core/config"
	"basegraph.app/hubsync/internal/model"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

var (
	ErrUnauthorized = errors.New("tracker rejected credentials")
	ErrUnsupported  = errors.New("entity type not fetchable")
	ErrUpstream     = errors.New("tracker request failed")
	ErrCircuitOpen  = errors.New("tracker circuit open")
)

const maxErrorBodyBytes = 4096

// Credentials authenticate one owner against the tracker API.
type Credentials struct {
	APIKey string
	// BaseURL overrides the configured endpoint when set.
	BaseURL string
}

// Page is one cursor page of normalized entity documents.
type Page struct {
	Nodes       []model.Document
	EndCursor   string
	HasNextPage bool
}

type Client struct {
	http     *retryablehttp.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	baseURL  string
	pageSize int
}

func NewClient(cfg config.TrackerConfig) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = cfg.MaxRetries
	httpClient.RetryWaitMin = 500 * time.Millisecond
	httpClient.RetryWaitMax = 10 * time.Second
	httpClient.Logger = slog.Default()
	if cfg.Timeout > 0 {
		httpClient.HTTPClient.Timeout = cfg.Timeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "tracker",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A bad key is one owner's problem, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrUnauthorized)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("tracker circuit state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		http:     httpClient,
		limiter:  rate.NewLimiter(limit, 1),
		breaker:  breaker,
		baseURL:  cfg.APIBaseURL,
		pageSize: pageSize,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []graphQLError             `json:"errors"`
}

type connectionPage struct {
	Nodes    []model.Document `json:"nodes"`
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
}

// FetchPage reads the page of entityType after cursor. An empty cursor
// starts from the beginning.
func (c *Client) FetchPage(ctx context.Context, creds Credentials, entityType model.EntityType, cursor string) (Page, error) {
	connection, ok := connections[entityType]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrUnsupported, entityType)
	}

	variables := map[string]any{"first": c.pageSize}
	if cursor != "" {
		variables["after"] = cursor
	}
	body, err := json.Marshal(graphQLRequest{
		Query:     pageQuery(connection, selections[entityType]),
		Variables: variables,
	})
	if err != nil {
		return Page{}, fmt.Errorf("encoding %s query: %w", entityType, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Page{}, err
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, creds, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Page{}, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		return Page{}, err
	}

	resp := out.(*graphQLResponse)
	raw, ok := resp.Data[connection]
	if !ok {
		return Page{}, fmt.Errorf("%w: response has no %s field", ErrUpstream, connection)
	}
	var conn connectionPage
	if err := json.Unmarshal(raw, &conn); err != nil {
		return Page{}, fmt.Errorf("%w: decoding %s: %w", ErrUpstream, connection, err)
	}

	page := Page{
		Nodes:       make([]model.Document, 0, len(conn.Nodes)),
		EndCursor:   conn.PageInfo.EndCursor,
		HasNextPage: conn.PageInfo.HasNextPage,
	}
	for _, node := range conn.Nodes {
		page.Nodes = append(page.Nodes, Normalize(entityType, node))
	}
	return page, nil
}

func (c *Client) post(ctx context.Context, creds Credentials, body []byte) (*graphQLResponse, error) {
	endpoint := c.baseURL
	if creds.BaseURL != "" {
		endpoint = creds.BaseURL
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building tracker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", creds.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrUpstream, err)
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrUpstream, strings.Join(msgs, "; "))
	}
	return &out, nil
}
