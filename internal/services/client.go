package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/shared"
)

const (
	DefaultAPIBaseURL = "https://api.spotify.com/v1"
	DefaultAuthURL    = "https://accounts.spotify.com/authorize"
	DefaultTokenURL   = "https://accounts.spotify.com/api/token"

	defaultSearchLimit = 10
	defaultDataDir     = "data"
)

// Client is a credentialed Spotify Web API client.
//
// It is not safe for concurrent use: every request is issued synchronously from the caller's goroutine.
type Client struct {
	creds       Credentials
	httpClient  *http.Client
	baseURL     string
	authURL     string
	tokenURL    string
	redirectURI string
	dataDir     string
	searchLimit int
	logger      *log.Logger
}

// Option configures a [Client]. Empty values keep the defaults.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithAuthURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.authURL = u
		}
	}
}

func WithTokenURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.tokenURL = u
		}
	}
}

func WithRedirectURI(u string) Option {
	return func(c *Client) { c.redirectURI = u }
}

// WithDataDir sets the directory that sync results are written to.
func WithDataDir(dir string) Option {
	return func(c *Client) {
		if dir != "" {
			c.dataDir = dir
		}
	}
}

func WithSearchLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a [Client] around a credential snapshot.
//
// Missing credential values are logged as warnings; requests made with them will fail at the API instead.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds:       creds,
		httpClient:  http.DefaultClient,
		baseURL:     DefaultAPIBaseURL,
		authURL:     DefaultAuthURL,
		tokenURL:    DefaultTokenURL,
		dataDir:     defaultDataDir,
		searchLimit: defaultSearchLimit,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = shared.NewLogger(nil)
	}

	for _, name := range creds.Missing() {
		c.logger.Warn("missing credential, using an empty value", "name", name)
	}

	return c
}

// NewClientFromConfig builds a [Client] from the loaded configuration.
func NewClientFromConfig(config *shared.Config, logger *log.Logger) *Client {
	return NewClient(
		CredentialsFromConfig(config.Credentials.Spotify),
		WithBaseURL(config.Spotify.APIBaseURL),
		WithAuthURL(config.Spotify.AuthURL),
		WithTokenURL(config.Spotify.TokenURL),
		WithRedirectURI(config.Credentials.Spotify.RedirectURI),
		WithDataDir(config.Storage.DataDir),
		WithSearchLimit(config.Spotify.SearchLimit),
		WithLogger(logger),
	)
}

// Credentials returns the current snapshot.
func (c *Client) Credentials() Credentials {
	return c.creds
}

// DataDir returns the directory sync results are written to.
func (c *Client) DataDir() string {
	return c.dataDir
}

func (c *Client) Logger() *log.Logger {
	return c.logger
}

// Endpoint joins path onto the API base URL.
func (c *Client) Endpoint(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

type response struct {
	StatusCode int
	Body       []byte
}

func (r *response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// get issues an authenticated GET and reads the whole body.
//
// Any status is returned as a response; only failures to send or read are errors, wrapped with [shared.ErrTransport].
func (c *Client) get(ctx context.Context, rawURL string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrTransport, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.creds.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrTransport, err)
	}

	return &response{StatusCode: resp.StatusCode, Body: body}, nil
}
