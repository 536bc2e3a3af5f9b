package params

import "math"

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig
}

var mainnetBeaconConfig = &BeaconChainConfig{
	// Constants (non-configurable).
	FarFutureEpoch:           math.MaxUint64,
	FarFutureSlot:            math.MaxUint64,
	GenesisSlot:              0,
	GenesisEpoch:             0,
	BaseRewardsPerEpoch:      4,
	DepositContractTreeDepth: 32,
	JustificationBitsLength:  4,
	ZeroHash:                 [32]byte{},
	EmptySignature:           [96]byte{},
	BLSPubkeyLength:          48,
	BLSSignatureLength:       96,

	// Misc constant.
	PresetBase:                "mainnet",
	ConfigName:                "mainnet",
	MaxCommitteesPerSlot:      64,
	TargetCommitteeSize:       128,
	MaxValidatorsPerCommittee: 2048,
	MinPerEpochChurnLimit:     4,
	ChurnLimitQuotient:        1 << 16,
	MinimumActiveValidators:   1,

	// Gwei value constants.
	MinDepositAmount:          1 * 1e9,
	MaxEffectiveBalance:       32 * 1e9,
	EjectionBalance:           16 * 1e9,
	EffectiveBalanceIncrement: 1 * 1e9,

	HysteresisQuotient:           4,
	HysteresisDownwardMultiplier: 1,
	HysteresisUpwardMultiplier:   5,

	// Initial value constants.
	BLSWithdrawalPrefixByte:         byte(0),
	ETH1AddressWithdrawalPrefixByte: byte(1),
	GenesisForkVersion:              []byte{0, 0, 0, 0},

	// Time parameter constants.
	MinAttestationInclusionDelay:     1,
	SlotsPerEpoch:                    32,
	MinSeedLookahead:                 1,
	MaxSeedLookahead:                 4,
	EpochsPerEth1VotingPeriod:        64,
	SlotsPerHistoricalRoot:           8192,
	MinValidatorWithdrawabilityDelay: 256,
	ShardCommitteePeriod:             256,
	MaxEpochHorizon:                  1 << 20,

	// State list length constants.
	EpochsPerHistoricalVector: 65536,
	EpochsPerSlashingsVector:  8192,
	ValidatorRegistryLimit:    1099511627776,

	// Reward and penalty quotients constants.
	WhistleBlowerRewardQuotient:    512,
	ProposerRewardQuotient:         8,
	MinSlashingPenaltyQuotient:     128,
	ProportionalSlashingMultiplier: 1,

	// Max operations per block constants.
	MaxProposerSlashings:     16,
	MaxAttesterSlashings:     2,
	MaxAttestations:          128,
	MaxDeposits:              16,
	MaxVoluntaryExits:        16,
	MaxBlsToExecutionChanges: 16,

	// BLS domain values.
	DomainBeaconProposer:       bytesToDomain(0x00),
	DomainBeaconAttester:       bytesToDomain(0x01),
	DomainRandao:               bytesToDomain(0x02),
	DomainDeposit:              bytesToDomain(0x03),
	DomainVoluntaryExit:        bytesToDomain(0x04),
	DomainBLSToExecutionChange: bytesToDomain(0x0A),

	ChainCacheSize: 1024,
}

func bytesToDomain(b byte) [4]byte {
	return [4]byte{b, 0, 0, 0}
}

// MainnetTestConfig is the mainnet config with a different name, for tests
// that mutate the active config.
func MainnetTestConfig() *BeaconChainConfig {
	cfg := MainnetConfig().Copy()
	cfg.ConfigName = "test"
	return cfg
}
