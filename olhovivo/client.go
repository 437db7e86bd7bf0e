package olhovivo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const loginPath = "Login/Autenticar"

// Config holds the connection details of an Olho Vivo session
type Config struct {
	BaseURL    string
	APIVersion string
	Token      string
}

// Client is an authenticated Olho Vivo session.
//
// A Client is not safe for concurrent use: the session cookie belongs to a
// single call sequence. Use one Client per goroutine (see VehiclesByLines).
type Client struct {
	baseURL       string
	apiVersion    string
	token         string
	endpoint      string
	authenticated bool
	sessionID     string

	httpClient *http.Client
	jar        http.CookieJar
	opts       *clientOptions
	baseLogger zerolog.Logger
	logger     zerolog.Logger
}

// NewClient creates a new Olho Vivo client and logs in with the configured token.
// Construction fails if the configuration is incomplete or the login is rejected.
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	return NewClientContext(context.Background(), cfg, logger, opts...)
}

// NewClientContext is NewClient with a context for the login request
func NewClientContext(ctx context.Context, cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	client, err := newClient(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}

	if err := client.Authenticate(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

// newClient builds the session without logging in
func newClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if strings.Trim(cfg.APIVersion, "/ ") == "" {
		return nil, fmt.Errorf("%w: API version is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("%w: API token is required", ErrInvalidConfig)
	}

	endpoint := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/") + "/" + strings.Trim(cfg.APIVersion, "/ ") + "/"
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", ErrInvalidConfig, err)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := &http.Client{
		Timeout: options.timeout,
		Jar:     jar,
	}
	if options.httpClient != nil {
		httpClient.Transport = options.httpClient.Transport
		httpClient.CheckRedirect = options.httpClient.CheckRedirect
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiVersion: cfg.APIVersion,
		token:      cfg.Token,
		endpoint:   endpoint,
		httpClient: httpClient,
		jar:        jar,
		opts:       options,
		baseLogger: logger,
		logger:     logger,
	}, nil
}

// Authenticate performs the login handshake. It is attempted exactly once per call;
// a rejected login leaves the session state untouched.
func (c *Client) Authenticate(ctx context.Context) error {
	loginURL := c.endpoint + loginPath
	params := url.Values{"token": {c.token}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.opts.userAgent != "" {
		req.Header.Set("User-Agent", c.opts.userAgent)
	}

	c.baseLogger.Debug().Str("url", loginURL).Msg("Authenticating with Olho Vivo")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, &NetworkError{URL: loginURL, Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrAuthentication, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code: %d", ErrAuthentication, resp.StatusCode)
	}

	var result any
	if err := json.Unmarshal(bytes.TrimSpace(body), &result); err != nil {
		return fmt.Errorf("%w: unexpected response %q", ErrAuthentication, string(body))
	}
	if !truthy(result) {
		return fmt.Errorf("%w: token rejected", ErrAuthentication)
	}
	if len(resp.Cookies()) == 0 {
		return fmt.Errorf("%w: server did not set a session cookie", ErrAuthentication)
	}

	c.authenticated = true
	c.sessionID = uuid.NewString()
	c.logger = c.baseLogger.With().Str("session", c.sessionID).Logger()
	c.logger.Debug().Msg("Authenticated with Olho Vivo")

	return nil
}

// IsAuthenticated reports whether the login handshake succeeded
func (c *Client) IsAuthenticated() bool {
	return c.authenticated
}

// SessionID returns the id attached to the current session's log lines
func (c *Client) SessionID() string {
	return c.sessionID
}

// Endpoint returns the base URL every path is resolved against
func (c *Client) Endpoint() string {
	return c.endpoint
}

// truthy mirrors the loose boolean reading of the login body
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != "" && val != "0" && !strings.EqualFold(val, "false")
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return false
	}
}
