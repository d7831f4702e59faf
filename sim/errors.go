package sim

import "fmt"

// ConfigError reports an invalid settings value rejected at a setter
// boundary. The simulation state is unchanged when one is returned.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
