package signing

import (
	"crypto/ed25519"
	"encoding/base64"
	"time"

	"github.com/betbot/gorh/rhcrypto/types"
)

// Signer signs requests with one API key and Ed25519 private key. It holds no
// mutable state and is safe for concurrent use.
type Signer struct {
	apiKey string
	key    ed25519.PrivateKey
	public string
	now    func() time.Time
}

// NewSigner parses the private key of creds once. A malformed key fails here.
func NewSigner(creds types.Credentials) (*Signer, error) {
	key, err := ParsePrivateKey(creds.PrivateKey)
	if err != nil {
		return nil, err
	}
	return &Signer{
		apiKey: creds.APIKey,
		key:    key,
		public: creds.PublicKey,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of s that reads the time from now. A nil signer
// stays nil.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	if s == nil {
		return nil
	}
	cp := *s
	cp.now = now
	return &cp
}

// APIKey returns the API key sent with every request.
func (s *Signer) APIKey() string {
	if s == nil {
		return ""
	}
	return s.apiKey
}

// PublicKey returns the configured base64 public key, or the one derived from
// the private key when none was configured.
func (s *Signer) PublicKey() string {
	if s == nil {
		return ""
	}
	if s.public != "" {
		return s.public
	}
	if len(s.key) != PrivateKeySize {
		return ""
	}
	return base64.StdEncoding.EncodeToString(s.key.Public().(ed25519.PublicKey))
}

// Sign signs one request with a fresh Unix timestamp. path must be exactly
// the transmitted path, query string included; body is the exact serialized
// body or "".
func (s *Signer) Sign(path, method, body string) (*types.SignedEnvelope, error) {
	now := time.Now
	if s != nil && s.now != nil {
		now = s.now
	}
	return s.SignAt(now().Unix(), path, method, body)
}

// SignAt signs one request with the given timestamp.
func (s *Signer) SignAt(timestamp int64, path, method, body string) (*types.SignedEnvelope, error) {
	if s == nil || len(s.key) != PrivateKeySize {
		return nil, &SigningError{Op: "sign", Err: ErrSignerNotConfigured}
	}
	message := CanonicalMessage(s.apiKey, timestamp, path, method, body)
	return &types.SignedEnvelope{
		Path:      path,
		Method:    method,
		Body:      body,
		Timestamp: timestamp,
		Signature: BuildSignature(s.key, message),
	}, nil
}
