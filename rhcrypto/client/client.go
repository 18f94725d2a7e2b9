package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/betbot/gorh/rhcrypto/signing"
	"github.com/betbot/gorh/rhcrypto/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "gorh"
)

// IDGenerator returns a unique client order identifier per call.
type IDGenerator func() string

// Config construction options. Zero values fall back to defaults.
type Config struct {
	// BaseURL API host, DefaultBaseURL when empty.
	BaseURL string

	// Timeout per request timeout of the underlying HTTP client.
	Timeout time.Duration

	// ProxyURL optional HTTP proxy. The environment proxy is used otherwise.
	ProxyURL string

	// UserAgent sent on every request.
	UserAgent string

	// IDGenerator client order id source, uuid.NewString when nil.
	IDGenerator IDGenerator

	// Logger diagnostic logger, the standard logrus logger when nil.
	Logger *logrus.Entry

	// HTTPClient optional net/http client to send requests through.
	HTTPClient *http.Client
}

// Client signed client of the crypto trading API. All fields are read-only
// after NewClient, so one Client may serve any number of concurrent calls.
type Client struct {
	baseURL    string
	signer     *signing.Signer
	httpClient *httpClient
	newID      IDGenerator
	log        *logrus.Entry
}

// NewClient builds a client for creds. A malformed private key fails here,
// before any request is made.
func NewClient(creds types.Credentials, cfg Config) (*Client, error) {
	signer, err := signing.NewSigner(creds)
	if err != nil {
		return nil, err
	}
	return newClientWithSigner(signer, cfg), nil
}

// NewClientWithSigner builds a client around an existing signer.
func NewClientWithSigner(signer *signing.Signer, cfg Config) *Client {
	return newClientWithSigner(signer, cfg)
}

func newClientWithSigner(signer *signing.Signer, cfg Config) *Client {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	newID := cfg.IDGenerator
	if newID == nil {
		newID = uuid.NewString
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "rhcrypto")

	return &Client{
		baseURL:    baseURL,
		signer:     signer,
		httpClient: newHTTPClient(baseURL, signer, cfg, log),
		newID:      newID,
		log:        log,
	}
}

// GetBaseURL returns the API host.
func (c *Client) GetBaseURL() string {
	return c.baseURL
}

// GetAPIKey returns the API key sent with every request.
func (c *Client) GetAPIKey() string {
	return c.signer.APIKey()
}

// Signer returns the request signer.
func (c *Client) Signer() *signing.Signer {
	return c.signer
}
