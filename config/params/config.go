// Package params defines the constants and tunables of the beacon chain model.
package params

import (
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
)

// BeaconChainConfig contains constant configs for the consensus model.
type BeaconChainConfig struct {
	// Constants (non-configurable).
	FarFutureEpoch           types.Epoch `yaml:"FAR_FUTURE_EPOCH"`
	FarFutureSlot            types.Slot  `yaml:"FAR_FUTURE_SLOT"`
	GenesisSlot              types.Slot  `yaml:"GENESIS_SLOT"`
	GenesisEpoch             types.Epoch `yaml:"GENESIS_EPOCH"`
	BaseRewardsPerEpoch      uint64      `yaml:"BASE_REWARDS_PER_EPOCH"`
	DepositContractTreeDepth uint64      `yaml:"DEPOSIT_CONTRACT_TREE_DEPTH"`
	JustificationBitsLength  uint64      `yaml:"JUSTIFICATION_BITS_LENGTH"`
	ZeroHash                 [32]byte
	EmptySignature           [96]byte
	BLSPubkeyLength          int
	BLSSignatureLength       int

	// Misc constants.
	PresetBase                string `yaml:"PRESET_BASE"`
	ConfigName                string `yaml:"CONFIG_NAME"`
	MaxCommitteesPerSlot      uint64 `yaml:"MAX_COMMITTEES_PER_SLOT"`
	TargetCommitteeSize       uint64 `yaml:"TARGET_COMMITTEE_SIZE"`
	MaxValidatorsPerCommittee uint64 `yaml:"MAX_VALIDATORS_PER_COMMITTEE"`
	MinPerEpochChurnLimit     uint64 `yaml:"MIN_PER_EPOCH_CHURN_LIMIT"`
	ChurnLimitQuotient        uint64 `yaml:"CHURN_LIMIT_QUOTIENT"`
	// MinimumActiveValidators is the lower bound on active validators that every
	// operation stage of the state transition must preserve.
	MinimumActiveValidators uint64 `yaml:"MINIMUM_ACTIVE_VALIDATORS"`

	// Gwei value constants.
	MinDepositAmount          uint64 `yaml:"MIN_DEPOSIT_AMOUNT"`
	MaxEffectiveBalance       uint64 `yaml:"MAX_EFFECTIVE_BALANCE"`
	EjectionBalance           uint64 `yaml:"EJECTION_BALANCE"`
	EffectiveBalanceIncrement uint64 `yaml:"EFFECTIVE_BALANCE_INCREMENT"`

	// Effective balance hysteresis.
	HysteresisQuotient           uint64 `yaml:"HYSTERESIS_QUOTIENT"`
	HysteresisDownwardMultiplier uint64 `yaml:"HYSTERESIS_DOWNWARD_MULTIPLIER"`
	HysteresisUpwardMultiplier   uint64 `yaml:"HYSTERESIS_UPWARD_MULTIPLIER"`

	// Initial value constants.
	BLSWithdrawalPrefixByte         byte   `yaml:"BLS_WITHDRAWAL_PREFIX"`
	ETH1AddressWithdrawalPrefixByte byte   `yaml:"ETH1_ADDRESS_WITHDRAWAL_PREFIX"`
	GenesisForkVersion              []byte `yaml:"GENESIS_FORK_VERSION"`

	// Time parameters.
	MinAttestationInclusionDelay     types.Slot  `yaml:"MIN_ATTESTATION_INCLUSION_DELAY"`
	SlotsPerEpoch                    types.Slot  `yaml:"SLOTS_PER_EPOCH"`
	MinSeedLookahead                 types.Epoch `yaml:"MIN_SEED_LOOKAHEAD"`
	MaxSeedLookahead                 types.Epoch `yaml:"MAX_SEED_LOOKAHEAD"`
	EpochsPerEth1VotingPeriod        types.Epoch `yaml:"EPOCHS_PER_ETH1_VOTING_PERIOD"`
	SlotsPerHistoricalRoot           types.Slot  `yaml:"SLOTS_PER_HISTORICAL_ROOT"`
	MinValidatorWithdrawabilityDelay types.Epoch `yaml:"MIN_VALIDATOR_WITHDRAWABILITY_DELAY"`
	ShardCommitteePeriod             types.Epoch `yaml:"SHARD_COMMITTEE_PERIOD"`
	// MaxEpochHorizon is the greatest epoch a fork-choice query or attestation
	// may name. Chain views are sized by epoch, so this caps their memory.
	MaxEpochHorizon types.Epoch `yaml:"MAX_EPOCH_HORIZON"`

	// State list lengths.
	EpochsPerHistoricalVector types.Epoch `yaml:"EPOCHS_PER_HISTORICAL_VECTOR"`
	EpochsPerSlashingsVector  types.Epoch `yaml:"EPOCHS_PER_SLASHINGS_VECTOR"`
	ValidatorRegistryLimit    uint64      `yaml:"VALIDATOR_REGISTRY_LIMIT"`

	// Reward and penalty quotients.
	WhistleBlowerRewardQuotient    uint64 `yaml:"WHISTLEBLOWER_REWARD_QUOTIENT"`
	ProposerRewardQuotient         uint64 `yaml:"PROPOSER_REWARD_QUOTIENT"`
	MinSlashingPenaltyQuotient     uint64 `yaml:"MIN_SLASHING_PENALTY_QUOTIENT"`
	ProportionalSlashingMultiplier uint64 `yaml:"PROPORTIONAL_SLASHING_MULTIPLIER"`

	// Max operations per block.
	MaxProposerSlashings     uint64 `yaml:"MAX_PROPOSER_SLASHINGS"`
	MaxAttesterSlashings     uint64 `yaml:"MAX_ATTESTER_SLASHINGS"`
	MaxAttestations          uint64 `yaml:"MAX_ATTESTATIONS"`
	MaxDeposits              uint64 `yaml:"MAX_DEPOSITS"`
	MaxVoluntaryExits        uint64 `yaml:"MAX_VOLUNTARY_EXITS"`
	MaxBlsToExecutionChanges uint64 `yaml:"MAX_BLS_TO_EXECUTION_CHANGES"`

	// Signature domains.
	DomainBeaconProposer       [4]byte `yaml:"DOMAIN_BEACON_PROPOSER"`
	DomainBeaconAttester       [4]byte `yaml:"DOMAIN_BEACON_ATTESTER"`
	DomainRandao               [4]byte `yaml:"DOMAIN_RANDAO"`
	DomainDeposit              [4]byte `yaml:"DOMAIN_DEPOSIT"`
	DomainVoluntaryExit        [4]byte `yaml:"DOMAIN_VOLUNTARY_EXIT"`
	DomainBLSToExecutionChange [4]byte `yaml:"DOMAIN_BLS_TO_EXECUTION_CHANGE"`

	// Fork choice store.
	ChainCacheSize int `yaml:"CHAIN_CACHE_SIZE"`
}
