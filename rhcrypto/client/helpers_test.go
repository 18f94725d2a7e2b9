package client

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/betbot/gorh/rhcrypto/signing"
	"github.com/betbot/gorh/rhcrypto/types"
)

const testOrderID = "497f6eca-6276-4993-bfeb-53cbbbba6f08"

type recordedRequest struct {
	Method     string
	RequestURI string
	Body       []byte
	Header     http.Header
	SigValid   bool
}

// fakeAPI records every request and checks its Ed25519 signature against the
// transmitted path and body.
type fakeAPI struct {
	t      *testing.T
	creds  types.Credentials
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest

	status int
	reply  string
}

func testCredentials() types.Credentials {
	seed := bytes.Repeat([]byte{9}, ed25519.SeedSize)
	key := ed25519.NewKeyFromSeed(seed)
	return types.Credentials{
		APIKey:     "rh-api-key",
		PrivateKey: base64.StdEncoding.EncodeToString(seed),
		PublicKey:  base64.StdEncoding.EncodeToString(key.Public().(ed25519.PublicKey)),
	}
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t, creds: testCredentials(), status: http.StatusOK, reply: `{}`}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	ts, _ := strconv.ParseInt(r.Header.Get(types.HeaderTimestamp), 10, 64)
	msg := signing.CanonicalMessage(r.Header.Get(types.HeaderAPIKey), ts, r.URL.RequestURI(), r.Method, string(body))
	valid := signing.VerifySignature(f.creds.PublicKey, msg, r.Header.Get(types.HeaderSignature)) == nil

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:     r.Method,
		RequestURI: r.URL.RequestURI(),
		Body:       body,
		Header:     r.Header.Clone(),
		SigValid:   valid,
	})
	status, reply := f.status, f.reply
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

func (f *fakeAPI) respond(status int, reply string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.reply = status, reply
}

func (f *fakeAPI) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.requests, "no request recorded")
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func (f *fakeAPI) client() *Client {
	f.t.Helper()
	c, err := NewClient(f.creds, Config{
		BaseURL:     f.server.URL,
		IDGenerator: func() string { return "fixed-client-order-id" },
		Logger:      quietLogger(),
	})
	require.NoError(f.t, err)
	return c
}
