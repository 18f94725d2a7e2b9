package types

// Header names required on every request.
const (
	HeaderAPIKey      = "x-api-key"
	HeaderTimestamp   = "x-timestamp"
	HeaderSignature   = "x-signature"
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"
)

// SignedEnvelope one signed request. It is built per call and never reused:
// Timestamp is taken when the request is sent.
type SignedEnvelope struct {
	Path      string
	Method    string
	Body      string
	Timestamp int64
	Signature string
}

// AuthHeader authentication headers for one request.
type AuthHeader struct {
	APIKey    string `json:"x-api-key"`
	Timestamp string `json:"x-timestamp"`
	Signature string `json:"x-signature"`
}

// Map returns the headers keyed by wire name, Content-Type included.
func (h *AuthHeader) Map() map[string]string {
	return map[string]string{
		HeaderContentType: ContentTypeJSON,
		HeaderAPIKey:      h.APIKey,
		HeaderTimestamp:   h.Timestamp,
		HeaderSignature:   h.Signature,
	}
}
