package olhovivo

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testVersion = "v2.1"
	testToken   = "test-token"
)

// fakeAPI is an Olho Vivo stand-in that counts calls per path
type fakeAPI struct {
	server *httptest.Server

	mu        sync.Mutex
	calls     map[string]int
	queries   map[string][]url.Values
	headers   map[string][]http.Header
	uris      map[string][]string
	responses map[string]func(call int) (int, string)

	loginBody   string
	loginStatus int
	setCookie   bool
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{
		calls:       make(map[string]int),
		queries:     make(map[string][]url.Values),
		headers:     make(map[string][]http.Header),
		uris:        make(map[string][]string),
		responses:   make(map[string]func(call int) (int, string)),
		loginBody:   "true",
		loginStatus: http.StatusOK,
		setCookie:   true,
	}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)

	return api
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/"+testVersion+"/")

	f.mu.Lock()
	f.calls[path]++
	call := f.calls[path]
	f.queries[path] = append(f.queries[path], r.URL.Query())
	f.headers[path] = append(f.headers[path], r.Header.Clone())
	f.uris[path] = append(f.uris[path], r.RequestURI)
	respond := f.responses[path]
	loginBody, loginStatus, setCookie := f.loginBody, f.loginStatus, f.setCookie
	f.mu.Unlock()

	if path == loginPath {
		if r.Method != http.MethodPost || r.URL.Query().Get("token") != testToken {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "false")
			return
		}
		if setCookie {
			http.SetCookie(w, &http.Cookie{Name: "apiCredentials", Value: "session-value", Path: "/"})
		}
		w.WriteHeader(loginStatus)
		fmt.Fprint(w, loginBody)
		return
	}

	if _, err := r.Cookie("apiCredentials"); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"Message":"Authorization has been denied for this request."}`)
		return
	}

	if respond == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	status, body := respond(call)
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

// respond registers a static 200 body for path
func (f *fakeAPI) respond(path, body string) {
	f.respondFunc(path, func(int) (int, string) { return http.StatusOK, body })
}

func (f *fakeAPI) respondFunc(path string, fn func(call int) (int, string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = fn
}

func (f *fakeAPI) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

// totalCalls counts every request except logins
func (f *fakeAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for path, n := range f.calls {
		if path != loginPath {
			total += n
		}
	}
	return total
}

func (f *fakeAPI) lastQuery(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := f.queries[path]
	if len(q) == 0 {
		return nil
	}
	return q[len(q)-1]
}

func (f *fakeAPI) lastRequestURI(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.uris[path]
	if len(u) == 0 {
		return ""
	}
	return u[len(u)-1]
}

func (f *fakeAPI) lastHeader(path string) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.headers[path]
	if len(h) == 0 {
		return nil
	}
	return h[len(h)-1]
}

func (f *fakeAPI) config() Config {
	return Config{
		BaseURL:    f.server.URL,
		APIVersion: testVersion,
		Token:      testToken,
	}
}

// newTestClient returns an authenticated client with millisecond backoff
func newTestClient(t *testing.T, api *fakeAPI, opts ...Option) *Client {
	t.Helper()

	opts = append([]Option{WithRetryDelay(time.Millisecond, 2*time.Millisecond)}, opts...)
	client, err := NewClient(api.config(), zerolog.Nop(), opts...)
	require.NoError(t, err)

	return client
}
