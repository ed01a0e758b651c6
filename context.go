package pasetox

import "context"

type tokenClaimsKey struct{}

// BindTokenClaims stores a verified claim set inside the context for
// downstream consumers.
func BindTokenClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, tokenClaimsKey{}, claims)
}

// TokenClaimsFromContext retrieves a claim set previously stored in the
// context.
func TokenClaimsFromContext(ctx context.Context) (*Claims, bool) {
	if ctx == nil {
		return nil, false
	}
	value := ctx.Value(tokenClaimsKey{})
	if value == nil {
		return nil, false
	}
	claims, ok := value.(*Claims)
	return claims, ok
}
