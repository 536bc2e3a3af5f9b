package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestUnmarshalConfig_MinimalPreset(t *testing.T) {
	cfg, err := UnmarshalConfig([]byte("PRESET_BASE: 'minimal'\nCONFIG_NAME: 'gasper-minimal'\nSLOTS_PER_EPOCH: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, "minimal", cfg.PresetBase)
	assert.Equal(t, "gasper-minimal", cfg.ConfigName)
	assert.Equal(t, uint64(4), uint64(cfg.SlotsPerEpoch))
	assert.Equal(t, MinimalSpecConfig().SlotsPerHistoricalRoot, cfg.SlotsPerHistoricalRoot)
}

func TestUnmarshalConfig_DefaultsToMainnet(t *testing.T) {
	cfg, err := UnmarshalConfig([]byte("MAX_VALIDATORS_PER_COMMITTEE: 16\n"))
	require.NoError(t, err)
	assert.Equal(t, "devnet", cfg.ConfigName)
	assert.Equal(t, uint64(16), cfg.MaxValidatorsPerCommittee)
	assert.Equal(t, MainnetConfig().SlotsPerEpoch, cfg.SlotsPerEpoch)
	// The shared preset is untouched.
	assert.Equal(t, uint64(2048), MainnetConfig().MaxValidatorsPerCommittee)
}

func TestUnmarshalConfig_HexValues(t *testing.T) {
	cfg, err := UnmarshalConfig([]byte("DOMAIN_DEPOSIT: 0x03000001\nGENESIS_FORK_VERSION: '0x00000002'\nBLS_WITHDRAWAL_PREFIX: 0x07\n"))
	require.NoError(t, err)
	assert.Equal(t, [4]byte{3, 0, 0, 1}, cfg.DomainDeposit)
	assert.DeepEqual(t, []byte{0, 0, 0, 2}, cfg.GenesisForkVersion)
	assert.Equal(t, byte(7), cfg.BLSWithdrawalPrefixByte)
}

func TestUnmarshalConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "unknown field", yaml: "NOT_A_FIELD: 1\n", wantErr: "failed to parse chain config yaml"},
		{name: "zero slots per epoch", yaml: "SLOTS_PER_EPOCH: 0\n", wantErr: "SLOTS_PER_EPOCH must be positive"},
		{name: "zero epoch horizon", yaml: "MAX_EPOCH_HORIZON: 0\n", wantErr: "MAX_EPOCH_HORIZON must be in [1, 2^32)"},
		{name: "epoch horizon overflow", yaml: "MAX_EPOCH_HORIZON: 18446744073709551615\n", wantErr: "MAX_EPOCH_HORIZON must be in [1, 2^32)"},
		{name: "bad hex", yaml: "DOMAIN_RANDAO: 0xzz\n", wantErr: "failed to decode hex string"},
		{name: "zero hysteresis quotient", yaml: "HYSTERESIS_QUOTIENT: 0\n", wantErr: "HYSTERESIS_QUOTIENT must be positive"},
		{name: "wrong justification bits", yaml: "JUSTIFICATION_BITS_LENGTH: 8\n", wantErr: "JUSTIFICATION_BITS_LENGTH must be 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalConfig([]byte(tt.yaml))
			require.ErrorContains(t, tt.wantErr, err)
		})
	}
}

func TestLoadChainConfigFile(t *testing.T) {
	SetupTestConfigCleanup(t)
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("CONFIG_NAME: 'loaded'\nMINIMUM_ACTIVE_VALIDATORS: 3\n"), 0600))
	require.NoError(t, LoadChainConfigFile(file))
	assert.Equal(t, "loaded", BeaconConfig().ConfigName)
	assert.Equal(t, uint64(3), BeaconConfig().MinimumActiveValidators)

	require.ErrorContains(t, "failed to read chain config file", LoadChainConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestBeaconChainConfig_Copy(t *testing.T) {
	cfg := MainnetConfig().Copy()
	cfg.GenesisForkVersion[0] = 9
	cfg.SlotsPerEpoch = 3
	assert.Equal(t, byte(0), MainnetConfig().GenesisForkVersion[0])
	assert.NotEqual(t, cfg.SlotsPerEpoch, MainnetConfig().SlotsPerEpoch)
}

func TestOverrideBeaconConfig(t *testing.T) {
	SetupTestConfigCleanup(t)
	cfg := BeaconConfig().Copy()
	cfg.MinimumActiveValidators = 64
	OverrideBeaconConfig(cfg)
	assert.Equal(t, uint64(64), BeaconConfig().MinimumActiveValidators)
}
