package pasetox

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reserved claim names with dedicated token semantics.
const (
	ClaimIssuer          = "iss"
	ClaimSubject         = "sub"
	ClaimAudience        = "aud"
	ClaimExpiration      = "exp"
	ClaimNotBefore       = "nbf"
	ClaimIssuedAt        = "iat"
	ClaimTokenIdentifier = "jti"
)

// Claims is a set of named claims a token is built from or decoded into.
// Values are stored in their canonical JSON form (string, float64, bool,
// []any, map[string]any). Claims is a map-backed reference type: copies
// share the underlying storage, use Clone for an independent set.
type Claims struct {
	m map[string]any
}

// NewClaims returns an empty claim set.
func NewClaims() Claims {
	return Claims{m: make(map[string]any)}
}

// ClaimsFromPayload converts a decoded token payload into a claim set.
// Payloads that are not JSON objects are rejected rather than silently
// collapsed to an empty set.
func ClaimsFromPayload(payload any) (Claims, error) {
	object, ok := payload.(map[string]any)
	if !ok {
		return Claims{}, newError(ErrCodeInvalidValue, fmt.Errorf("token payload is not an object (got %T)", payload))
	}
	claims := NewClaims()
	for name, value := range object {
		claims.m[name] = value
	}
	return claims, nil
}

// WithIssuer sets the issuer claim and returns the updated set.
func (c Claims) WithIssuer(issuer string) Claims {
	return c.withString(ClaimIssuer, issuer)
}

// WithSubject sets the subject claim and returns the updated set.
func (c Claims) WithSubject(subject string) Claims {
	return c.withString(ClaimSubject, subject)
}

// WithAudience sets the audience claim and returns the updated set.
func (c Claims) WithAudience(audience string) Claims {
	return c.withString(ClaimAudience, audience)
}

// WithExpiration sets the expiration claim. The value is stored as given
// and validated as an RFC3339 timestamp at sign time.
func (c Claims) WithExpiration(expiration string) Claims {
	return c.withString(ClaimExpiration, expiration)
}

// WithNotBefore sets the not-before claim. The value is stored as given
// and validated as an RFC3339 timestamp at sign time.
func (c Claims) WithNotBefore(notBefore string) Claims {
	return c.withString(ClaimNotBefore, notBefore)
}

// WithIssuedAt sets the issued-at claim. The value is stored as given
// and validated as an RFC3339 timestamp at sign time.
func (c Claims) WithIssuedAt(issuedAt string) Claims {
	return c.withString(ClaimIssuedAt, issuedAt)
}

// WithTokenIdentifier sets the token identifier claim and returns the
// updated set.
func (c Claims) WithTokenIdentifier(identifier string) Claims {
	return c.withString(ClaimTokenIdentifier, identifier)
}

// WithFreshTokenIdentifier sets a newly generated token identifier.
func (c Claims) WithFreshTokenIdentifier() Claims {
	return c.withString(ClaimTokenIdentifier, uuid.NewString())
}

func (c Claims) withString(name, value string) Claims {
	if c.m == nil {
		c.m = make(map[string]any)
	}
	c.m[name] = value
	return c
}

// SetClaim stores a custom claim. The value must serialize to JSON and
// must not serialize to null; on failure the set is left unchanged.
func (c *Claims) SetClaim(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return newError(ErrCodeSerialization, err)
	}
	if string(data) == "null" {
		return newError(ErrCodeInvalidValue, fmt.Errorf("claim %q serializes to null", name))
	}
	var canonical any
	if err := json.Unmarshal(data, &canonical); err != nil {
		return newError(ErrCodeSerialization, err)
	}
	if c.m == nil {
		c.m = make(map[string]any)
	}
	c.m[name] = canonical
	return nil
}

// GetClaim retrieves a claim by name and converts it to T. A missing
// claim and a claim of the wrong shape both report false; callers that
// need the distinction should use All.
func GetClaim[T any](c Claims, name string) (T, bool) {
	var out T
	raw, ok := c.m[name]
	if !ok {
		return out, false
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// GetIssuer returns the issuer claim.
func (c Claims) GetIssuer() (string, bool) {
	return GetClaim[string](c, ClaimIssuer)
}

// GetSubject returns the subject claim.
func (c Claims) GetSubject() (string, bool) {
	return GetClaim[string](c, ClaimSubject)
}

// GetAudience returns the audience claim.
func (c Claims) GetAudience() (string, bool) {
	return GetClaim[string](c, ClaimAudience)
}

// GetExpiration returns the expiration claim as a timestamp.
func (c Claims) GetExpiration() (time.Time, bool) {
	return c.timeClaim(ClaimExpiration)
}

// GetNotBefore returns the not-before claim as a timestamp.
func (c Claims) GetNotBefore() (time.Time, bool) {
	return c.timeClaim(ClaimNotBefore)
}

// GetIssuedAt returns the issued-at claim as a timestamp.
func (c Claims) GetIssuedAt() (time.Time, bool) {
	return c.timeClaim(ClaimIssuedAt)
}

// GetTokenIdentifier returns the token identifier claim.
func (c Claims) GetTokenIdentifier() (string, bool) {
	return GetClaim[string](c, ClaimTokenIdentifier)
}

func (c Claims) timeClaim(name string) (time.Time, bool) {
	value, ok := GetClaim[string](c, name)
	if !ok {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// All iterates over the claims in name-sorted order. The sequence is
// restartable and read-only.
func (c Claims) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range slices.Sorted(maps.Keys(c.m)) {
			if !yield(name, c.m[name]) {
				return
			}
		}
	}
}

// Len reports the number of claims in the set.
func (c Claims) Len() int {
	return len(c.m)
}

// Clone returns a deep copy of the claim set.
func (c Claims) Clone() Claims {
	out := NewClaims()
	for name, value := range c.m {
		out.m[name] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i, e := range v {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// String renders the claims as "name: value" pairs in sorted order.
func (c Claims) String() string {
	parts := make([]string, 0, len(c.m))
	for name, value := range c.All() {
		data, err := json.Marshal(value)
		if err != nil {
			parts = append(parts, fmt.Sprintf("%s: %v", name, value))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, data))
	}
	return strings.Join(parts, ", ")
}
