package core

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/devblok/masterchart/device"
)

// ErrValidationLayersUnavailable is returned when validation is requested
// but the runtime does not provide every requested layer
var ErrValidationLayersUnavailable = errors.New("validation layers requested, but not available")

// ResolveValidation decides which layers the instance is created with.
// Disabled validation yields no layers. Enabled validation requires every
// configured layer to be in available.
func ResolveValidation(cfg ValidationConfiguration, available []string) ([]string, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	if missing := device.MissingExtensions(cfg.Layers, available); len(missing) > 0 {
		return nil, errors.Wrapf(ErrValidationLayersUnavailable, "missing %s", strings.Join(missing, ", "))
	}

	layers := make([]string, len(cfg.Layers))
	copy(layers, cfg.Layers)
	return layers, nil
}
