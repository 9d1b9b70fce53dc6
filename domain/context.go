package domain

import "context"

// SessionMeta carries optional client metadata recorded on the sessions a
// request creates.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type sessionMetaKey struct{}

// WithSessionMeta returns a context carrying the client metadata.
func WithSessionMeta(ctx context.Context, meta SessionMeta) context.Context {
	return context.WithValue(ctx, sessionMetaKey{}, meta)
}

// SessionMetaFromContext extracts client metadata, if any was attached.
func SessionMetaFromContext(ctx context.Context) SessionMeta {
	if meta, ok := ctx.Value(sessionMetaKey{}).(SessionMeta); ok {
		return meta
	}
	return SessionMeta{}
}
