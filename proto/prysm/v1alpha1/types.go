// Package eth holds the phase0 consensus containers of the beacon chain model
// together with their SSZ encodings and hash tree roots.
package eth

import (
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/go-bitfield"
)

const (
	// RootLength is the length of a block or state root.
	RootLength = 32
	// BLSPubkeyLength is the length of a serialized BLS public key.
	BLSPubkeyLength = 48
	// BLSSignatureLength is the length of a serialized BLS signature.
	BLSSignatureLength = 96
	// ExecutionAddressLength is the length of an execution layer address.
	ExecutionAddressLength = 20
	// DepositProofLength is the number of branch nodes in a deposit proof,
	// the contract tree depth plus the mixed in deposit count.
	DepositProofLength = 33
	// MaxValidatorsPerCommitteeLimit bounds attestation bitlists and
	// attesting index lists.
	MaxValidatorsPerCommitteeLimit = 2048
)

// Fork identifies the active fork version.
type Fork struct {
	PreviousVersion [4]byte
	CurrentVersion  [4]byte
	Epoch           types.Epoch
}

// ForkData is hashed into signature domains.
type ForkData struct {
	CurrentVersion        [4]byte
	GenesisValidatorsRoot [32]byte
}

// Checkpoint is the epoch boundary block of Root's chain at Epoch. It is a
// plain comparable value and may be used as a map key.
type Checkpoint struct {
	Epoch types.Epoch
	Root  [32]byte
}

// AttestationData is the vote of an attestation: a head block and a
// source to target link between checkpoints.
type AttestationData struct {
	Slot            types.Slot
	CommitteeIndex  types.CommitteeIndex
	BeaconBlockRoot [32]byte
	Source          *Checkpoint
	Target          *Checkpoint
}

// Attestation is an aggregate vote as broadcast and included in blocks.
type Attestation struct {
	AggregationBits bitfield.Bitlist
	Data            *AttestationData
	Signature       [96]byte
}

// PendingAttestation is an attestation accepted into the state. Bit v of
// AggregationBits set means committee position v cast the vote.
type PendingAttestation struct {
	AggregationBits bitfield.Bitlist
	Data            *AttestationData
	InclusionDelay  types.Slot
	ProposerIndex   types.ValidatorIndex
}

// IndexedAttestation lists the validators of an attestation explicitly.
type IndexedAttestation struct {
	AttestingIndices []types.ValidatorIndex
	Data             *AttestationData
	Signature        [96]byte
}

// Eth1Data is the deposit contract snapshot voted on by proposers.
type Eth1Data struct {
	DepositRoot  [32]byte
	DepositCount uint64
	BlockHash    [32]byte
}

// BeaconBlockHeader is a block with its body replaced by the body root.
type BeaconBlockHeader struct {
	Slot          types.Slot
	ProposerIndex types.ValidatorIndex
	ParentRoot    [32]byte
	StateRoot     [32]byte
	BodyRoot      [32]byte
}

// SignedBeaconBlockHeader is a block header with the proposer signature.
type SignedBeaconBlockHeader struct {
	Header    *BeaconBlockHeader
	Signature [96]byte
}

// ProposerSlashing proves that a proposer signed two different headers for
// the same slot.
type ProposerSlashing struct {
	Header_1 *SignedBeaconBlockHeader
	Header_2 *SignedBeaconBlockHeader
}

// AttesterSlashing proves that the intersection of two indexed attestations
// double voted or surround voted.
type AttesterSlashing struct {
	Attestation_1 *IndexedAttestation
	Attestation_2 *IndexedAttestation
}

// DepositMessage is the signed part of a deposit.
type DepositMessage struct {
	PublicKey             [48]byte
	WithdrawalCredentials [32]byte
	Amount                uint64
}

// DepositData is a deposit made to the deposit contract.
type DepositData struct {
	PublicKey             [48]byte
	WithdrawalCredentials [32]byte
	Amount                uint64
	Signature             [96]byte
}

// Deposit is deposit data with its merkle branch against the eth1 deposit root.
type Deposit struct {
	Proof [][32]byte
	Data  *DepositData
}

// VoluntaryExit is a request by a validator to leave the active set.
type VoluntaryExit struct {
	Epoch          types.Epoch
	ValidatorIndex types.ValidatorIndex
}

// SignedVoluntaryExit is a voluntary exit signed by the exiting validator.
type SignedVoluntaryExit struct {
	Exit      *VoluntaryExit
	Signature [96]byte
}

// BLSToExecutionChange rotates the withdrawal key of a validator from a BLS
// key to an execution layer address.
type BLSToExecutionChange struct {
	ValidatorIndex     types.ValidatorIndex
	FromBlsPubkey      [48]byte
	ToExecutionAddress [20]byte
}

// SignedBLSToExecutionChange is a key change signed by the BLS withdrawal key.
type SignedBLSToExecutionChange struct {
	Message   *BLSToExecutionChange
	Signature [96]byte
}

// Validator is a registry entry of the beacon state.
type Validator struct {
	PublicKey                  [48]byte
	WithdrawalCredentials      [32]byte
	EffectiveBalance           uint64
	Slashed                    bool
	ActivationEligibilityEpoch types.Epoch
	ActivationEpoch            types.Epoch
	ExitEpoch                  types.Epoch
	WithdrawableEpoch          types.Epoch
}

// SigningData is the container whose root is signed.
type SigningData struct {
	ObjectRoot [32]byte
	Domain     [32]byte
}

// BeaconBlockBody carries the operations of a block.
type BeaconBlockBody struct {
	RandaoReveal          [96]byte
	Eth1Data              *Eth1Data
	Graffiti              [32]byte
	ProposerSlashings     []*ProposerSlashing
	AttesterSlashings     []*AttesterSlashing
	Attestations          []*Attestation
	Deposits              []*Deposit
	VoluntaryExits        []*SignedVoluntaryExit
	BlsToExecutionChanges []*SignedBLSToExecutionChange
}

// BeaconBlock is a block of the chain. Its root is the root of its header.
type BeaconBlock struct {
	Slot          types.Slot
	ProposerIndex types.ValidatorIndex
	ParentRoot    [32]byte
	StateRoot     [32]byte
	Body          *BeaconBlockBody
}

// SignedBeaconBlock is a block with the proposer signature.
type SignedBeaconBlock struct {
	Block     *BeaconBlock
	Signature [96]byte
}

// BeaconState is the plain data of a beacon state. The state package wraps
// it with copy on write accessors.
type BeaconState struct {
	GenesisTime                 uint64
	GenesisValidatorsRoot       [32]byte
	Slot                        types.Slot
	Fork                        *Fork
	LatestBlockHeader           *BeaconBlockHeader
	BlockRoots                  [][32]byte
	StateRoots                  [][32]byte
	HistoricalRoots             [][32]byte
	Eth1Data                    *Eth1Data
	Eth1DataVotes               []*Eth1Data
	Eth1DepositIndex            uint64
	Validators                  []*Validator
	Balances                    []uint64
	RandaoMixes                 [][32]byte
	Slashings                   []uint64
	PreviousEpochAttestations   []*PendingAttestation
	CurrentEpochAttestations    []*PendingAttestation
	JustificationBits           bitfield.Bitvector4
	PreviousJustifiedCheckpoint *Checkpoint
	CurrentJustifiedCheckpoint  *Checkpoint
	FinalizedCheckpoint         *Checkpoint
}
