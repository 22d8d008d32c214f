package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/permitio/docgate"
)

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, subject docgate.Subject, pairs []Pair) ([]bool, error)

func (f LoaderFunc) LoadDecisions(ctx context.Context, subject docgate.Subject, pairs []Pair) ([]bool, error) {
	return f(ctx, subject, pairs)
}

// Compile-time interface checks.
var (
	_ Loader = (LoaderFunc)(nil)
	_ Loader = (*HTTPLoader)(nil)
)

// HTTPLoader fetches decisions from a docgate server's bulk check
// endpoint, identifying the subject via the user-id header.
type HTTPLoader struct {
	base   string
	client *http.Client
}

// HTTPLoaderOption configures the HTTP loader.
type HTTPLoaderOption func(*HTTPLoader)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) HTTPLoaderOption {
	return func(l *HTTPLoader) { l.client = c }
}

// NewHTTPLoader creates a loader talking to the given docgate base URL.
func NewHTTPLoader(baseURL string, opts ...HTTPLoaderOption) *HTTPLoader {
	l := &HTTPLoader{
		base: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type bulkCheckItem struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
}

type bulkCheckRequest struct {
	Checks []bulkCheckItem `json:"checks"`
}

type bulkCheckResult struct {
	Allowed bool `json:"allowed"`
}

type bulkCheckResponse struct {
	Results []bulkCheckResult `json:"results"`
}

func (l *HTTPLoader) LoadDecisions(ctx context.Context, subject docgate.Subject, pairs []Pair) ([]bool, error) {
	body := bulkCheckRequest{Checks: make([]bulkCheckItem, len(pairs))}
	for i, p := range pairs {
		body.Checks[i] = bulkCheckItem{
			Action:   string(p.Action),
			Resource: p.Resource.String(),
		}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("mirror: encode bulk request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.base+"/v1/authz/bulk", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("mirror: build bulk request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if subject.Kind == docgate.SubjectUser {
		req.Header.Set("user-id", subject.ID)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mirror: bulk check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("mirror: bulk check returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded bulkCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("mirror: decode bulk response: %w", err)
	}
	if len(decoded.Results) != len(pairs) {
		return nil, fmt.Errorf("mirror: bulk check returned %d results for %d pairs", len(decoded.Results), len(pairs))
	}

	results := make([]bool, len(decoded.Results))
	for i, r := range decoded.Results {
		results[i] = r.Allowed
	}
	return results, nil
}
