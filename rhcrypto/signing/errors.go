package signing

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidKeyEncoding key material is not valid base64.
	ErrInvalidKeyEncoding = errors.New("key is not valid base64")

	// ErrInvalidKeyLength decoded key has the wrong length for Ed25519.
	ErrInvalidKeyLength = errors.New("invalid ed25519 key length")

	// ErrSignerNotConfigured signer has no private key.
	ErrSignerNotConfigured = errors.New("signer has no private key")

	// ErrInvalidSignatureEncoding signature is not valid base64.
	ErrInvalidSignatureEncoding = errors.New("signature is not valid base64")

	// ErrSignatureMismatch signature does not verify against the public key.
	ErrSignatureMismatch = errors.New("signature does not match message")
)

// SigningError failure to produce or check a signature. It is raised before
// any network activity and is never retryable.
type SigningError struct {
	Op  string
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing: %s: %v", e.Op, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}
