// Package di wires the upswitch services together using samber/do v2.
package di

import (
	"github.com/samber/do/v2"
)

// ConfigPathKey is the named key for the config path string.
const ConfigPathKey = "config.path"

// Container wraps the do.Injector with upswitch specific configuration.
type Container struct {
	injector *do.RootScope
}

// NewContainer creates and configures the DI container. All service
// providers are registered lazily; nothing is constructed until invoked.
func NewContainer(configPath string) *Container {
	injector := do.New()

	do.ProvideNamedValue(injector, ConfigPathKey, configPath)
	RegisterSingletons(injector)

	return &Container{injector: injector}
}

// RegisterSingletons registers all service providers in dependency order:
//  1. Config (config path only)
//  2. Logger (Config)
//  3. Prober (Config, Logger)
//  4. Store (Config, Logger)
//  5. Dispatcher (Config, Logger)
//  6. Controller (all of the above)
func RegisterSingletons(i do.Injector) {
	do.Provide(i, NewConfig)
	do.Provide(i, NewLogger)
	do.Provide(i, NewProber)
	do.Provide(i, NewStore)
	do.Provide(i, NewDispatcher)
	do.Provide(i, NewController)
}

// Invoke resolves a service from the container.
func Invoke[T any](c *Container) (T, error) {
	return do.Invoke[T](c.injector)
}

// MustInvoke resolves a service from the container or panics.
// Use this only during startup where errors are fatal.
func MustInvoke[T any](c *Container) T {
	return do.MustInvoke[T](c.injector)
}
