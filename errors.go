package docgate

import "errors"

var (
	// ErrAccessDenied is returned when the PDP denies an enforced check.
	ErrAccessDenied = errors.New("docgate: access denied")

	// ErrPolicyUnavailable is returned when the PDP cannot be reached or
	// times out. It is never retried and never downgraded to an allow or a
	// deny; the request fails as a server error.
	ErrPolicyUnavailable = errors.New("docgate: policy service unavailable")

	// ErrCategoryNotFound is returned when a category ID is absent from the
	// store.
	ErrCategoryNotFound = errors.New("docgate: category not found")

	// ErrDocumentNotFound is returned when a document ID is absent from the
	// store.
	ErrDocumentNotFound = errors.New("docgate: document not found")

	// ErrUnknownRole is returned when a role name does not normalize to any
	// configured role. The assignment fails before any remote call.
	ErrUnknownRole = errors.New("docgate: unknown role")

	// ErrAssignmentRejected is returned when the remote policy service
	// rejects a role assignment (bad role name, unknown resource instance).
	ErrAssignmentRejected = errors.New("docgate: role assignment rejected")
)
