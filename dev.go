package pasetox

import "time"

// DevClaims holds attributes used when issuing synthetic claim sets for
// local development.
type DevClaims struct {
	Subject  string
	Issuer   string
	Audience string
	Lifetime time.Duration
}

// DefaultDevClaims returns a baseline configuration suitable for local
// development.
func DefaultDevClaims(audience string) DevClaims {
	aud := audience
	if aud == "" {
		aud = "https://dev.local"
	}
	return DevClaims{
		Subject:  "dev-bypass",
		Issuer:   "pasetox.dev",
		Audience: aud,
		Lifetime: time.Hour,
	}
}

// ToClaims converts the dev configuration into a ready-to-sign claim
// set with a generated token identifier and current timestamps.
func (d DevClaims) ToClaims() Claims {
	lifetime := d.Lifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	now := time.Now().UTC()
	return NewClaims().
		WithSubject(d.Subject).
		WithIssuer(d.Issuer).
		WithAudience(d.Audience).
		WithIssuedAt(now.Format(time.RFC3339)).
		WithNotBefore(now.Format(time.RFC3339)).
		WithExpiration(now.Add(lifetime).Format(time.RFC3339)).
		WithFreshTokenIdentifier()
}
