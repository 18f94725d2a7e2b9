package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/betbot/gorh/internal/metrics"
	"github.com/betbot/gorh/rhcrypto/signing"
	"github.com/betbot/gorh/rhcrypto/types"
)

// httpClient signs and sends requests. It never retries.
type httpClient struct {
	client *resty.Client
	signer *signing.Signer
	log    *logrus.Entry
}

func newHTTPClient(baseURL string, signer *signing.Signer, cfg Config, log *logrus.Entry) *httpClient {
	var rc *resty.Client
	if cfg.HTTPClient != nil {
		rc = resty.NewWithClient(cfg.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetRedirectPolicy(noRedirects).
		SetLogger(log).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", types.ContentTypeJSON)
	if cfg.ProxyURL != "" {
		rc.SetProxy(cfg.ProxyURL)
	}

	return &httpClient{
		client: rc,
		signer: signer,
		log:    log,
	}
}

// noRedirects hands a 3xx back to send unfollowed. The signature covers the
// original path only.
var noRedirects = resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
})

// requestURI normalizes path to the form the transport puts on the wire:
// leading slash, escaped path, raw query kept as is.
func requestURI(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(path)
	if err != nil {
		return "", errors.Wrapf(err, "rhcrypto: invalid request path %q", path)
	}
	if u.IsAbs() || u.Host != "" {
		return "", errors.Errorf("rhcrypto: request path %q must not carry a host", path)
	}
	return u.RequestURI(), nil
}

// send signs path, method and body, sends the request and returns the body of
// a 2xx response. path is normalized first; the normalized form is both
// signed and sent.
func (h *httpClient) send(ctx context.Context, path, method string, body []byte) ([]byte, error) {
	method = strings.ToUpper(method)
	path, err := requestURI(path)
	if err != nil {
		return nil, err
	}

	headers, err := signing.CreateAuthHeaders(h.signer, path, method, string(body))
	if err != nil {
		metrics.SigningErrors.Add(1)
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	req := h.client.R().
		SetContext(ctx).
		SetHeaders(headers.Map())
	if len(body) > 0 {
		req.SetBody(body)
	}

	metrics.Requests.Add(1)
	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		metrics.TransportErrors.Add(1)
		h.log.WithFields(logrus.Fields{
			"method":   method,
			"path":     path,
			"duration": time.Since(start),
		}).WithError(err).Debug("request failed")
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	fields := logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode(),
		"duration": resp.Time(),
	}
	if !resp.IsSuccess() {
		metrics.HTTPErrors.Add(1)
		h.log.WithFields(fields).Warn("non-2xx response")
		return nil, newHTTPError(method, path, resp.StatusCode(), resp.Status(), resp.Body())
	}
	h.log.WithFields(fields).Debug("request done")
	return resp.Body(), nil
}

func newHTTPError(method, path string, statusCode int, status string, raw []byte) *HTTPError {
	var body any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			body = string(raw)
		}
	}
	return &HTTPError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Status:     status,
		Body:       body,
		RawBody:    raw,
	}
}

// decodeValue parses raw as a generic JSON value. Numbers stay json.Number so
// prices keep their precision. An empty body decodes to nil.
func decodeValue(method, path string, raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, &DecodeError{Method: method, Path: path, Body: raw, Err: errors.Wrap(err, "invalid json")}
	}
	return out, nil
}

// decodeInto parses raw into out, ignoring unknown fields.
func decodeInto(method, path string, raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Method: method, Path: path, Body: raw, Err: errors.Wrapf(err, "decode into %T", out)}
	}
	return nil
}

// Dispatch signs and sends one request and returns the parsed JSON body
// as-is. body is attached only when non-empty. Errors are *signing.SigningError,
// *HTTPError, *TransportError or *DecodeError and are never retried.
func (c *Client) Dispatch(ctx context.Context, path, method string, body []byte) (any, error) {
	raw, err := c.httpClient.send(ctx, path, method, body)
	if err != nil {
		return nil, err
	}
	return decodeValue(strings.ToUpper(method), path, raw)
}

func (c *Client) dispatchInto(ctx context.Context, path, method string, body []byte, out any) error {
	raw, err := c.httpClient.send(ctx, path, method, body)
	if err != nil {
		return err
	}
	return decodeInto(method, path, raw, out)
}
