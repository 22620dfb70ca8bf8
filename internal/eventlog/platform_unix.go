//go:build !windows

package eventlog

// NewPlatformStore returns the operating-system Store. registryDir is the
// journal source registry; an empty value selects DefaultRegistryDir.
func NewPlatformStore(registryDir string) Store {
	return NewJournalStore(registryDir)
}
