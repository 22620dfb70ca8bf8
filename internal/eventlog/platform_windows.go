//go:build windows

package eventlog

// NewPlatformStore returns the operating-system Store. registryDir is
// ignored on Windows, where sources live in the system registry.
func NewPlatformStore(registryDir string) Store {
	return NewRegistryStore()
}
