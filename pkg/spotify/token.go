package spotify

import "time"

// expiryBuffer treats tokens as expired slightly early so a request does
// not leave with a token that dies in flight.
const expiryBuffer = 30 * time.Second

// Token is an OAuth 2.0 token as returned by the accounts service.
// ExpiresAt is not part of the wire format; it is computed with SetExpiry
// when the token is received and survives JSON round-trips so persisted
// tokens keep their deadline.
type Token struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitzero"`
}

// SetExpiry computes the absolute expiry from ExpiresIn relative to now.
func (t *Token) SetExpiry(now time.Time) {
	t.ExpiresAt = now.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// Expired reports whether the token is past (or within the buffer of) its
// expiry. A token without a computed expiry is never considered expired.
func (t *Token) Expired() bool {
	if t.ExpiresAt.IsZero() {
		return false
	}

	return time.Now().After(t.ExpiresAt.Add(-expiryBuffer))
}

// Valid reports whether the token has an access token and is not expired.
func (t *Token) Valid() bool {
	return t.AccessToken != "" && !t.Expired()
}
