package signing

import "crypto/ed25519"

const (
	// SeedSize 32-byte private key seed.
	SeedSize = ed25519.SeedSize

	// PrivateKeySize 64-byte private key (seed followed by public key).
	PrivateKeySize = ed25519.PrivateKeySize
)
