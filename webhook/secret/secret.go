package secret

import "crypto/subtle"

const (
	// HeaderName carries the shared secret on inbound webhooks
	HeaderName = "x-webhook-token"

	// EventHeaderName optionally carries the event type code
	EventHeaderName = "event"
)

/* Secret is the static shared secret configured for the Troquecommerce webhook
 * An empty secret means authentication is switched off and every request passes
 */
type Secret struct {
	value string
}

// New creates a Secret; "" yields an open (unauthenticated) secret
func New(value string) Secret {
	return Secret{value: value}
}

// Open reports whether every request is accepted regardless of header
func (s Secret) Open() bool {
	return s.value == ""
}

// Verify compares the presented header value with the secret.
// Exact and case-sensitive; the comparison runs in constant time.
func (s Secret) Verify(presented string) bool {
	if s.Open() {
		return true
	}
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(s.value)) == 1
}
