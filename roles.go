package docgate

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// NormalizeRole capitalizes the first letter of input and validates the
// result against the configured role names. The remote policy configuration
// defines roles with capitalized names ("Editor"), while callers commonly
// send them lowercased; a name whose capitalized form is not configured
// fails here instead of on the remote service.
func NormalizeRole(input string, configured []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%w: empty role name", ErrUnknownRole)
	}

	r, size := utf8.DecodeRuneInString(input)
	name := string(unicode.ToUpper(r)) + input[size:]

	for _, role := range configured {
		if role == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a configured role", ErrUnknownRole, name)
}
