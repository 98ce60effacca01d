//go:build !windows

package discovery

// SystemProbe returns nil on platforms without a system configuration store
// to consult; discovery starts at the fixed candidate stage.
func SystemProbe() PathProbe {
	return nil
}
