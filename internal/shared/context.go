package shared

import "context"

// Claims is the verified identity attached to a request after token
// verification. It is immutable for the lifetime of the request.
type Claims struct {
	UserID  string
	IsAdmin bool
}

type claimsContextKey struct{}

// ContextWithClaims stores the verified claims in context.
func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts the verified claims from context. The second
// return value is false for unauthenticated requests.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(Claims)
	return claims, ok
}
