package types

// ValidatorIndex in eth2.
type ValidatorIndex uint64

// CommitteeIndex in eth2.
type CommitteeIndex uint64

// Gwei is the denomination of validator balances.
type Gwei uint64
