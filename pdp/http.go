package pdp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/permitio/docgate"
)

// Compile-time interface check.
var _ docgate.PolicyClient = (*HTTP)(nil)

// HTTP calls a remote policy-decision point over its REST interface:
// POST {base}/allowed for checks and POST {base}/role_assignments for
// assignments. Authentication is a bearer token.
type HTTP struct {
	base   string
	token  string
	client *http.Client
}

// HTTPOption configures the HTTP policy client.
type HTTPOption func(*HTTP)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) HTTPOption {
	return func(h *HTTP) { h.token = token }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) { h.client = c }
}

// NewHTTP creates a policy client for the PDP at the given base URL.
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: DefaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type allowedRequest struct {
	User     string          `json:"user"`
	Action   string          `json:"action"`
	Resource allowedResource `json:"resource"`
	Tenant   string          `json:"tenant,omitempty"`
}

type allowedResource struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

type allowedResponse struct {
	Allow bool `json:"allow"`
}

// Check implements docgate.PolicyClient. Any transport, status, or decode
// failure is returned as an error; the caller decides that it is a hard
// failure, never a decision.
func (h *HTTP) Check(ctx context.Context, req *docgate.CheckRequest) (bool, error) {
	body := allowedRequest{
		User:   req.Subject.ID,
		Action: string(req.Action),
		Resource: allowedResource{
			Type: req.Resource.Type,
			Key:  req.Resource.ID,
		},
	}

	var resp allowedResponse
	if err := h.post(ctx, "/allowed", body, &resp); err != nil {
		return false, fmt.Errorf("pdp: check: %w", err)
	}
	return resp.Allow, nil
}

type assignRequest struct {
	User             string `json:"user"`
	Role             string `json:"role"`
	Tenant           string `json:"tenant"`
	ResourceInstance string `json:"resource_instance"`
}

// AssignRole implements docgate.PolicyClient. A 4xx response means the
// remote service rejected the assignment (unknown role or resource) and
// surfaces as ErrAssignmentRejected with the remote message.
func (h *HTTP) AssignRole(ctx context.Context, a *docgate.RoleAssignment) error {
	body := assignRequest{
		User:             a.UserID,
		Role:             a.Role,
		Tenant:           a.Tenant,
		ResourceInstance: a.Resource.String(),
	}
	if err := h.post(ctx, "/role_assignments", body, nil); err != nil {
		return fmt.Errorf("pdp: assign role: %w", err)
	}
	return nil
}

func (h *HTTP) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode >= 400 {
		msg := readErrorMessage(resp.Body)
		if resp.StatusCode < 500 && path == "/role_assignments" {
			return fmt.Errorf("%w: %s", docgate.ErrAssignmentRejected, msg)
		}
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage extracts a remote error message from a response body,
// falling back to the raw text.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no error detail"
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(data))
}
