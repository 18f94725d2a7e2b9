package signing

import (
	"crypto/ed25519"
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParsePrivateKey decodes a base64 Ed25519 private key. Both the 32-byte seed
// and the 64-byte seed+public key forms are accepted.
func ParsePrivateKey(b64 string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, &SigningError{Op: "decode private key", Err: errors.Wrap(ErrInvalidKeyEncoding, err.Error())}
	}
	switch len(raw) {
	case SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case PrivateKeySize:
		key := make(ed25519.PrivateKey, PrivateKeySize)
		copy(key, raw)
		return key, nil
	default:
		return nil, &SigningError{Op: "decode private key", Err: errors.Wrapf(ErrInvalidKeyLength, "got %d bytes", len(raw))}
	}
}

// ParsePublicKey decodes a base64 Ed25519 public key.
func ParsePublicKey(b64 string) (ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, &SigningError{Op: "decode public key", Err: errors.Wrap(ErrInvalidKeyEncoding, err.Error())}
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, &SigningError{Op: "decode public key", Err: errors.Wrapf(ErrInvalidKeyLength, "got %d bytes", len(raw))}
	}
	return ed25519.PublicKey(raw), nil
}

// CanonicalMessage builds the signed message: apiKey, timestamp, path, method
// and body concatenated in this order with no separators. The remote server
// rebuilds the same bytes, so any change here breaks authentication.
func CanonicalMessage(apiKey string, timestamp int64, path, method, body string) string {
	var b strings.Builder
	ts := strconv.FormatInt(timestamp, 10)
	b.Grow(len(apiKey) + len(ts) + len(path) + len(method) + len(body))
	b.WriteString(apiKey)
	b.WriteString(ts)
	b.WriteString(path)
	b.WriteString(method)
	b.WriteString(body)
	return b.String()
}

// BuildSignature signs message with key and returns the base64 signature.
func BuildSignature(key ed25519.PrivateKey, message string) string {
	sig := ed25519.Sign(key, []byte(message))
	return base64.StdEncoding.EncodeToString(sig)
}

// VerifySignature checks a base64 signature of message against a base64
// public key.
func VerifySignature(publicKeyB64, message, signatureB64 string) error {
	pub, err := ParsePublicKey(publicKeyB64)
	if err != nil {
		return err
	}
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return &SigningError{Op: "decode signature", Err: errors.Wrap(ErrInvalidSignatureEncoding, err.Error())}
	}
	if !ed25519.Verify(pub, []byte(message), sig) {
		return &SigningError{Op: "verify", Err: ErrSignatureMismatch}
	}
	return nil
}
