package api

import (
	"errors"

	"github.com/xraph/forge"

	"github.com/permitio/docgate"
)

// mapError maps domain errors to Forge HTTP errors. ErrPolicyUnavailable
// is deliberately not mapped: an unreachable PDP is a server fault, never
// a 4xx.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, docgate.ErrCategoryNotFound) || errors.Is(err, docgate.ErrDocumentNotFound) {
		return forge.NotFound(err.Error())
	}
	if errors.Is(err, docgate.ErrAccessDenied) {
		return forge.Forbidden(err.Error())
	}
	if errors.Is(err, docgate.ErrUnknownRole) || errors.Is(err, docgate.ErrAssignmentRejected) {
		return forge.BadRequest(err.Error())
	}
	return err
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}
