package params

import (
	"testing"
)

// SetupTestConfigCleanup preserves the active beacon config and restores it
// once the test finishes.
func SetupTestConfigCleanup(t testing.TB) {
	prev := BeaconConfig().Copy()
	t.Cleanup(func() {
		OverrideBeaconConfig(prev)
	})
}

// SetupMinimalConfig switches the active config to the minimal preset for the
// duration of the test.
func SetupMinimalConfig(t testing.TB) {
	SetupTestConfigCleanup(t)
	OverrideBeaconConfig(MinimalSpecConfig())
}
