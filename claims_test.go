package pasetox

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestSetAndGetClaim(t *testing.T) {
	claims := NewClaims()
	if err := claims.SetClaim("sub", "1234567890"); err != nil {
		t.Fatalf("SetClaim sub: %v", err)
	}
	if err := claims.SetClaim("name", "John Doe"); err != nil {
		t.Fatalf("SetClaim name: %v", err)
	}
	if err := claims.SetClaim("admin", true); err != nil {
		t.Fatalf("SetClaim admin: %v", err)
	}

	sub, ok := GetClaim[string](claims, "sub")
	if !ok || sub != "1234567890" {
		t.Fatalf("unexpected sub: %q (present=%v)", sub, ok)
	}
	name, ok := GetClaim[string](claims, "name")
	if !ok || name != "John Doe" {
		t.Fatalf("unexpected name: %q (present=%v)", name, ok)
	}
	admin, ok := GetClaim[bool](claims, "admin")
	if !ok || !admin {
		t.Fatalf("unexpected admin: %v (present=%v)", admin, ok)
	}
}

func TestSetClaimOverwrites(t *testing.T) {
	claims := NewClaims()
	if err := claims.SetClaim("count", 1); err != nil {
		t.Fatalf("SetClaim: %v", err)
	}
	if err := claims.SetClaim("count", 2); err != nil {
		t.Fatalf("SetClaim overwrite: %v", err)
	}
	count, ok := GetClaim[int](claims, "count")
	if !ok || count != 2 {
		t.Fatalf("unexpected count: %d (present=%v)", count, ok)
	}
	if claims.Len() != 1 {
		t.Fatalf("expected 1 claim, got %d", claims.Len())
	}
}

func TestSetClaimRejectsNull(t *testing.T) {
	claims := NewClaims()

	if err := claims.SetClaim("k", nil); CodeOf(err) != ErrCodeInvalidValue {
		t.Fatalf("expected %s for nil value, got %v", ErrCodeInvalidValue, err)
	}
	var ptr *string
	if err := claims.SetClaim("k", ptr); CodeOf(err) != ErrCodeInvalidValue {
		t.Fatalf("expected %s for nil pointer, got %v", ErrCodeInvalidValue, err)
	}

	if _, ok := GetClaim[any](claims, "k"); ok {
		t.Fatal("claim set changed by rejected SetClaim")
	}
	if claims.Len() != 0 {
		t.Fatalf("expected empty set, got %d claims", claims.Len())
	}
}

func TestSetClaimRejectsUnserializable(t *testing.T) {
	claims := NewClaims()
	if err := claims.SetClaim("invalid", math.NaN()); CodeOf(err) != ErrCodeSerialization {
		t.Fatalf("expected %s for NaN, got %v", ErrCodeSerialization, err)
	}
	if claims.Len() != 0 {
		t.Fatalf("expected empty set, got %d claims", claims.Len())
	}
}

func TestBuilderReservedClaims(t *testing.T) {
	claims := NewClaims().
		WithSubject("1234567890").
		WithIssuer("issuer").
		WithAudience("audience").
		WithExpiration("2033-10-01T00:00:00+00:00").
		WithNotBefore("2033-09-01T00:00:00+00:00").
		WithIssuedAt("2033-09-01T00:00:00+00:00").
		WithTokenIdentifier("token_id")

	if subject, ok := claims.GetSubject(); !ok || subject != "1234567890" {
		t.Fatalf("unexpected subject: %q (present=%v)", subject, ok)
	}
	if issuer, ok := claims.GetIssuer(); !ok || issuer != "issuer" {
		t.Fatalf("unexpected issuer: %q (present=%v)", issuer, ok)
	}
	if audience, ok := claims.GetAudience(); !ok || audience != "audience" {
		t.Fatalf("unexpected audience: %q (present=%v)", audience, ok)
	}
	if identifier, ok := claims.GetTokenIdentifier(); !ok || identifier != "token_id" {
		t.Fatalf("unexpected token identifier: %q (present=%v)", identifier, ok)
	}

	expiration, ok := claims.GetExpiration()
	if !ok {
		t.Fatal("expiration missing")
	}
	want, err := time.Parse(time.RFC3339, "2033-10-01T00:00:00+00:00")
	if err != nil {
		t.Fatalf("parse want: %v", err)
	}
	if !expiration.Equal(want) {
		t.Fatalf("unexpected expiration: %s", expiration)
	}
	if notBefore, ok := claims.GetNotBefore(); !ok || !notBefore.Equal(want.AddDate(0, -1, 0)) {
		t.Fatalf("unexpected not before: %s (present=%v)", notBefore, ok)
	}
	if issuedAt, ok := claims.GetIssuedAt(); !ok || !issuedAt.Equal(want.AddDate(0, -1, 0)) {
		t.Fatalf("unexpected issued at: %s (present=%v)", issuedAt, ok)
	}
}

func TestGetClaimMissingOrWrongType(t *testing.T) {
	claims := NewClaims()
	if _, ok := GetClaim[string](claims, "nonexistent"); ok {
		t.Fatal("expected missing claim to report absent")
	}

	if err := claims.SetClaim("name", "John Doe"); err != nil {
		t.Fatalf("SetClaim: %v", err)
	}
	if _, ok := GetClaim[bool](claims, "name"); ok {
		t.Fatal("expected wrong-typed claim to report absent")
	}
}

func TestTimeGettersRejectMalformedValues(t *testing.T) {
	claims := NewClaims().WithIssuedAt("not a date")
	if _, ok := claims.GetIssuedAt(); ok {
		t.Fatal("expected malformed issued at to report absent")
	}
}

func TestIterationOrderIsSorted(t *testing.T) {
	first := NewClaims()
	for _, name := range []string{"sub", "admin", "name"} {
		if err := first.SetClaim(name, name); err != nil {
			t.Fatalf("SetClaim %s: %v", name, err)
		}
	}
	second := NewClaims()
	for _, name := range []string{"name", "sub", "admin"} {
		if err := second.SetClaim(name, name); err != nil {
			t.Fatalf("SetClaim %s: %v", name, err)
		}
	}

	collect := func(c Claims) []string {
		var names []string
		for name := range c.All() {
			names = append(names, name)
		}
		return names
	}

	firstNames := collect(first)
	secondNames := collect(second)
	want := []string{"admin", "name", "sub"}
	for i, name := range want {
		if firstNames[i] != name || secondNames[i] != name {
			t.Fatalf("unexpected order: %v vs %v, want %v", firstNames, secondNames, want)
		}
	}

	// The sequence must be restartable.
	if again := collect(first); len(again) != len(firstNames) {
		t.Fatalf("second pass yielded %d names, want %d", len(again), len(firstNames))
	}
}

func TestClaimsFromPayload(t *testing.T) {
	payload := map[string]any{"sub": "user-1", "admin": true}
	claims, err := ClaimsFromPayload(payload)
	if err != nil {
		t.Fatalf("ClaimsFromPayload: %v", err)
	}
	if subject, ok := claims.GetSubject(); !ok || subject != "user-1" {
		t.Fatalf("unexpected subject: %q (present=%v)", subject, ok)
	}

	if _, err := ClaimsFromPayload("not an object"); CodeOf(err) != ErrCodeInvalidValue {
		t.Fatalf("expected %s for non-object payload, got %v", ErrCodeInvalidValue, err)
	}
	if _, err := ClaimsFromPayload([]any{"a", "b"}); CodeOf(err) != ErrCodeInvalidValue {
		t.Fatalf("expected %s for array payload, got %v", ErrCodeInvalidValue, err)
	}
}

func TestClone(t *testing.T) {
	original := NewClaims()
	if err := original.SetClaim("meta", map[string]any{"role": "admin"}); err != nil {
		t.Fatalf("SetClaim: %v", err)
	}

	clone := original.Clone()
	meta, ok := GetClaim[map[string]any](clone, "meta")
	if !ok || meta["role"] != "admin" {
		t.Fatalf("unexpected clone meta: %v (present=%v)", meta, ok)
	}

	inner, _ := clone.m["meta"].(map[string]any)
	inner["role"] = "user"

	meta, _ = GetClaim[map[string]any](original, "meta")
	if meta["role"] != "admin" {
		t.Fatal("mutating clone leaked into original")
	}
}

func TestString(t *testing.T) {
	claims := NewClaims()
	if err := claims.SetClaim("sub", "user-1"); err != nil {
		t.Fatalf("SetClaim: %v", err)
	}
	if err := claims.SetClaim("admin", true); err != nil {
		t.Fatalf("SetClaim: %v", err)
	}
	got := claims.String()
	want := `admin: true, sub: "user-1"`
	if got != want {
		t.Fatalf("unexpected String: %q, want %q", got, want)
	}
	if !strings.HasPrefix(got, "admin") {
		t.Fatalf("expected sorted rendering, got %q", got)
	}
}
