package params

import (
	"sync"

	"github.com/mohae/deepcopy"
)

var (
	beaconConfig = MainnetConfig()
	configLock   sync.RWMutex
)

// BeaconConfig retrieves beacon chain config.
func BeaconConfig() *BeaconChainConfig {
	configLock.RLock()
	defer configLock.RUnlock()
	return beaconConfig
}

// OverrideBeaconConfig by replacing the config. The preferred pattern is to
// call BeaconConfig(), change the specific parameters, and then call
// OverrideBeaconConfig(c). Any subsequent calls to params.BeaconConfig() will
// return this new configuration.
func OverrideBeaconConfig(c *BeaconChainConfig) {
	configLock.Lock()
	defer configLock.Unlock()
	beaconConfig = c
}

// Copy returns a copy of the config object.
func (b *BeaconChainConfig) Copy() *BeaconChainConfig {
	config, ok := deepcopy.Copy(*b).(BeaconChainConfig)
	if !ok {
		config = *b
	}
	return &config
}
