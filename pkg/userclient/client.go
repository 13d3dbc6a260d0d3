package userclient

import (
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is used when neither an explicit URL nor USER_API_URL is set.
	DefaultBaseURL = "http://localhost:4000"
	// BaseURLEnv names the environment variable holding the API base URL.
	BaseURLEnv = "USER_API_URL"
)

// Client is a client for the user-management API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is sent as a bearer token when set. Servers running with the
	// admin guard require it on mutating user routes.
	Token string
}

// NewClient returns a Client for baseURL. An empty baseURL falls back to
// USER_API_URL, then to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: ResolveBaseURL(baseURL),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ResolveBaseURL applies the explicit > environment > default precedence.
func ResolveBaseURL(explicit string) string {
	u := explicit
	if u == "" {
		u = os.Getenv(BaseURLEnv)
	}
	if u == "" {
		u = DefaultBaseURL
	}
	return strings.TrimSuffix(u, "/")
}
