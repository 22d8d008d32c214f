package extension

// Config holds the docgate extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.docgate" or "docgate" keys).
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// PDPAddress is the base URL of the policy decision point. Used to
	// construct an HTTP policy client when none is provided.
	PDPAddress string `json:"pdp_address" mapstructure:"pdp_address" yaml:"pdp_address"`

	// PDPToken is the bearer token for the policy decision point.
	PDPToken string `json:"pdp_token" mapstructure:"pdp_token" yaml:"pdp_token"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PDPAddress: "http://localhost:7766",
	}
}
