package cont

import "context"

type contextKey string

const userKey contextKey = "user"

// PutUser stores the authenticated username in the request context.
func PutUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// GetUser returns the authenticated username, or "" when absent.
func GetUser(ctx context.Context) string {
	if username, ok := ctx.Value(userKey).(string); ok {
		return username
	}
	return ""
}
