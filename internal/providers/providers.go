// Package providers wires the built-in subtitle providers into the registry.
// Registration is an explicit bootstrap call rather than an import-time side
// effect, so embedders control exactly which providers exist.
package providers

import (
	"github.com/KennethWKZ/subfinder/internal/provider"
	"github.com/KennethWKZ/subfinder/internal/provider/shooter"
	"github.com/KennethWKZ/subfinder/internal/provider/zimuku"
)

// RegisterBuiltins registers every built-in provider. Shooter is also bound
// under the "default" alias.
func RegisterBuiltins() error {
	if err := provider.RegisterDefault(shooter.Name, shooter.New); err != nil {
		return err
	}
	return provider.Register(zimuku.Name, zimuku.New)
}
