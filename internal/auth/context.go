package auth

import "context"

type ctxKey string

// ContextSessionKey holds the authenticated Session for the request.
const ContextSessionKey ctxKey = "auth_session"

// ContextWithSession attaches the session to the request context.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, session)
}

// SessionFromContext extracts the session placed by the middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(ContextSessionKey).(*Session)
	return session, ok
}
