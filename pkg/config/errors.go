package config

import "errors"

var (
	ErrMissingAPIKey         = errors.New("api key is required (RH_API_KEY)")
	ErrMissingPrivateKey     = errors.New("private key is required (RH_PRIVATE_KEY)")
	ErrInvalidTimeout        = errors.New("timeout must be a positive duration")
	ErrInvalidInterval       = errors.New("watcher interval must be a positive duration")
	ErrInvalidSecretStoreKey = errors.New("secret store key must be 32 bytes (hex or base64)")
)
