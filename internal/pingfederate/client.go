package pingfederate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pingcheck/pingcheck/internal/metrics"
)

// Form field and attribute keys used by the Ping Federate validate_bearer exchange.
const (
	tokenKey        = "token"
	clientIDKey     = "client_id"
	clientSecretKey = "client_secret"
	grantTypeKey    = "grant_type"
	errorKey        = "error"
	scopeKey        = "scope"
)

// GrantType is the fixed grant type Ping Federate requires for bearer
// token validation.
const GrantType = "urn:pingidentity.com:oauth2:grant_type:validate_bearer"

// DefaultTimeout is the provider request timeout used when none is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of a failed response is echoed into errors.
const maxErrorBody = 1024

// StatusPolicy reports whether a response with the given HTTP status code
// carries a classifiable introspection payload. Statuses outside the policy
// are transport failures.
type StatusPolicy func(statusCode int) bool

// DefaultStatusPolicy treats 2xx and 400 as classifiable. Ping Federate
// reports rejected tokens with a 400 whose body still carries the error
// payload, so a 400 must not abort processing.
func DefaultStatusPolicy(statusCode int) bool {
	return (statusCode >= 200 && statusCode < 300) || statusCode == http.StatusBadRequest
}

// Client issues token introspection requests to a Ping Federate endpoint.
// It is safe for concurrent use; all fields are fixed at construction.
type Client struct {
	endpoint     string
	clientID     string
	clientSecret string
	policy       StatusPolicy
	httpClient   *http.Client
	collector    metrics.Collector
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the transport timeout for introspection requests.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithStatusPolicy replaces the classifiable-status policy.
func WithStatusPolicy(policy StatusPolicy) Option {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithCollector sets the metrics collector used for response counters and
// call latency.
func WithCollector(collector metrics.Collector) Option {
	return func(c *Client) {
		c.collector = collector
	}
}

// NewClient creates a new introspection client. The endpoint URL, client id,
// and client secret are all required; construction fails if any is blank.
func NewClient(endpoint, clientID, clientSecret string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("pingfederate: introspection endpoint URL is required")
	}
	if strings.TrimSpace(clientID) == "" {
		return nil, errors.New("pingfederate: client id is required")
	}
	if strings.TrimSpace(clientSecret) == "" {
		return nil, errors.New("pingfederate: client secret is required")
	}

	c := &Client{
		endpoint:     endpoint,
		clientID:     clientID,
		clientSecret: clientSecret,
		policy:       DefaultStatusPolicy,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		collector: &metrics.NoopCollector{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the configured introspection endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Introspect sends the token to the introspection endpoint and returns the
// raw attribute mapping from the response body. Responses whose status falls
// outside the classifiable-status policy, and classifiable responses whose
// body is not a JSON object, return a *TransportError. The full round trip
// is timed on every exit path, and every received response increments the
// status-labeled counter.
func (c *Client) Introspect(ctx context.Context, token string) (map[string]any, error) {
	start := time.Now()
	defer func() {
		c.collector.IntrospectionDuration(time.Since(start))
	}()

	form := url.Values{}
	form.Set(tokenKey, token)
	form.Set(clientIDKey, c.clientID)
	form.Set(clientSecretKey, c.clientSecret)
	form.Set(grantTypeKey, GrantType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("sending request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.collector.IntrospectionResponse(resp.StatusCode)

	if !c.policy(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var attrs map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		// A classifiable status without a decodable body carries nothing to
		// classify; it is a provider malfunction, not an invalid token.
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decoding response: %w", err),
		}
	}
	return attrs, nil
}
