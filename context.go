package docgate

import "context"

type contextKey int

const ctxKeySubject contextKey = iota

// WithSubject returns a context carrying the request subject. HTTP layers
// set it once per request after reading the identifying header.
func WithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, ctxKeySubject, s)
}

// SubjectFromContext returns the subject stored by WithSubject. Requests
// without one are treated as anonymous; the PDP still decides.
func SubjectFromContext(ctx context.Context) Subject {
	s, ok := ctx.Value(ctxKeySubject).(Subject)
	if !ok {
		return Anonymous
	}
	return s
}
