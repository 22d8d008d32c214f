// Package pdp provides PolicyClient implementations: an HTTP client for a
// remote policy-decision point and an in-memory fake for tests and local
// development.
package pdp

import "time"

// DefaultRequestTimeout bounds each HTTP round trip to the PDP when the
// caller's context carries no earlier deadline.
const DefaultRequestTimeout = 10 * time.Second
