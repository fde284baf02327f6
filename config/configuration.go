package config

import "fmt"

type (
	// Validated marks a configuration that is checked
	// once it has been populated.
	Validated interface {
		Validate() error
	}
)

// Load populates output from the configuration at path.
// If output is Validated, it must also pass validation.
func Load(
	provider Provider,
	path     string,
	flat     bool,
	output   any,
) error {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if output == nil {
		panic("output cannot be nil")
	}
	if err := provider.Unmarshal(path, flat, output); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if v, ok := output.(Validated); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}
