package olhovivo

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the per-request timeout used by the Olho Vivo API client
	DefaultTimeout = 2 * time.Second
	// DefaultMaxAttempts bounds the busy-response retry loop
	DefaultMaxAttempts = 5
	// DefaultRetryDelay is the wait before the second attempt, doubled on every retry
	DefaultRetryDelay = 250 * time.Millisecond
	// DefaultRetryMaxDelay caps the backoff between attempts
	DefaultRetryMaxDelay = 2 * time.Second
	// DefaultMapPath is where ExportMap writes the KMZ archive
	DefaultMapPath = "mapa.kmz"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout       time.Duration
	maxAttempts   int
	retryDelay    time.Duration
	retryMaxDelay time.Duration
	mapPath       string
	userAgent     string
	httpClient    *http.Client
}

func defaultOptions() *clientOptions {
	return &clientOptions{
		timeout:       DefaultTimeout,
		maxAttempts:   DefaultMaxAttempts,
		retryDelay:    DefaultRetryDelay,
		retryMaxDelay: DefaultRetryMaxDelay,
		mapPath:       DefaultMapPath,
		userAgent:     "olhovivo-go",
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithMaxAttempts sets how many times a request is issued while the API answers busy.
// Values below 1 are ignored.
func WithMaxAttempts(attempts int) Option {
	return func(o *clientOptions) {
		if attempts >= 1 {
			o.maxAttempts = attempts
		}
	}
}

// WithRetryDelay sets the initial and maximum wait between busy retries.
func WithRetryDelay(delay, maxDelay time.Duration) Option {
	return func(o *clientOptions) {
		if delay >= 0 {
			o.retryDelay = delay
		}
		if maxDelay >= delay {
			o.retryMaxDelay = maxDelay
		}
	}
}

// WithMapPath sets the file ExportMap writes to.
func WithMapPath(path string) Option {
	return func(o *clientOptions) {
		if path != "" {
			o.mapPath = path
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient uses the given client's transport. The timeout and cookie jar
// are still managed by the session.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}
