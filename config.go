package docgate

import "time"

// DefaultCheckTimeout bounds each PDP round trip. A timeout surfaces as
// ErrPolicyUnavailable, identical to an unreachable service.
const DefaultCheckTimeout = 5 * time.Second

// DefaultTenant is the tenant applied to role assignments that do not name
// one.
const DefaultTenant = "default"

// Config holds configuration for the Guard.
type Config struct {
	// CheckTimeout bounds each PolicyClient call. Zero means
	// DefaultCheckTimeout; negative disables the timeout.
	CheckTimeout time.Duration `json:"check_timeout,omitempty" yaml:"check_timeout"`

	// Tenant is applied to role assignments without an explicit tenant.
	Tenant string `json:"tenant,omitempty" yaml:"tenant"`

	// Roles is the closed set of role names defined in the remote policy
	// configuration. Assignment input is normalized (first letter
	// capitalized) and must match one of these exactly.
	Roles []string `json:"roles,omitempty" yaml:"roles"`
}

// DefaultConfig returns a Config matching the demo policy configuration.
func DefaultConfig() Config {
	return Config{
		CheckTimeout: DefaultCheckTimeout,
		Tenant:       DefaultTenant,
		Roles:        []string{"Admin", "Editor", "Viewer"},
	}
}

func (c Config) checkTimeout() time.Duration {
	switch {
	case c.CheckTimeout < 0:
		return 0
	case c.CheckTimeout == 0:
		return DefaultCheckTimeout
	default:
		return c.CheckTimeout
	}
}

func (c Config) tenant() string {
	if c.Tenant == "" {
		return DefaultTenant
	}
	return c.Tenant
}
