package signing

import (
	"strconv"

	"github.com/betbot/gorh/rhcrypto/types"
)

// CreateAuthHeaders signs one request and returns its authentication headers.
func CreateAuthHeaders(signer *Signer, path, method, body string) (*types.AuthHeader, error) {
	env, err := signer.Sign(path, method, body)
	if err != nil {
		return nil, err
	}
	return HeadersFromEnvelope(signer.APIKey(), env), nil
}

// HeadersFromEnvelope builds the authentication headers of a signed envelope.
func HeadersFromEnvelope(apiKey string, env *types.SignedEnvelope) *types.AuthHeader {
	return &types.AuthHeader{
		APIKey:    apiKey,
		Timestamp: strconv.FormatInt(env.Timestamp, 10),
		Signature: env.Signature,
	}
}
