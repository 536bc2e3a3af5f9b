package eth

import (
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	"github.com/prysmaticlabs/go-bitfield"
)

// CopyFork copies the provided fork.
func CopyFork(f *Fork) *Fork {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}

// CopyCheckpoint copies the provided checkpoint.
func CopyCheckpoint(c *Checkpoint) *Checkpoint {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// CopyAttestationData copies the provided attestation data object.
func CopyAttestationData(d *AttestationData) *AttestationData {
	if d == nil {
		return nil
	}
	return &AttestationData{
		Slot:            d.Slot,
		CommitteeIndex:  d.CommitteeIndex,
		BeaconBlockRoot: d.BeaconBlockRoot,
		Source:          CopyCheckpoint(d.Source),
		Target:          CopyCheckpoint(d.Target),
	}
}

// CopyAttestation copies the provided attestation object.
func CopyAttestation(att *Attestation) *Attestation {
	if att == nil {
		return nil
	}
	return &Attestation{
		AggregationBits: copyBitlist(att.AggregationBits),
		Data:            CopyAttestationData(att.Data),
		Signature:       att.Signature,
	}
}

// CopyPendingAttestation copies the provided pending attestation object.
func CopyPendingAttestation(att *PendingAttestation) *PendingAttestation {
	if att == nil {
		return nil
	}
	return &PendingAttestation{
		AggregationBits: copyBitlist(att.AggregationBits),
		Data:            CopyAttestationData(att.Data),
		InclusionDelay:  att.InclusionDelay,
		ProposerIndex:   att.ProposerIndex,
	}
}

// CopyPendingAttestationSlice copies the provided slice of pending attestations.
func CopyPendingAttestationSlice(input []*PendingAttestation) []*PendingAttestation {
	if input == nil {
		return nil
	}
	res := make([]*PendingAttestation, len(input))
	for i := 0; i < len(res); i++ {
		res[i] = CopyPendingAttestation(input[i])
	}
	return res
}

// CopyIndexedAttestation copies the provided indexed attestation.
func CopyIndexedAttestation(att *IndexedAttestation) *IndexedAttestation {
	if att == nil {
		return nil
	}
	var indices []types.ValidatorIndex
	if att.AttestingIndices != nil {
		indices = make([]types.ValidatorIndex, len(att.AttestingIndices))
		copy(indices, att.AttestingIndices)
	}
	return &IndexedAttestation{
		AttestingIndices: indices,
		Data:             CopyAttestationData(att.Data),
		Signature:        att.Signature,
	}
}

// CopyEth1Data copies the provided eth1data object.
func CopyEth1Data(data *Eth1Data) *Eth1Data {
	if data == nil {
		return nil
	}
	cp := *data
	return &cp
}

// CopyBeaconBlockHeader copies the provided header.
func CopyBeaconBlockHeader(h *BeaconBlockHeader) *BeaconBlockHeader {
	if h == nil {
		return nil
	}
	cp := *h
	return &cp
}

// CopyValidator copies the provided validator.
func CopyValidator(v *Validator) *Validator {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// CopyBeaconState deep copies the provided state data.
func CopyBeaconState(s *BeaconState) *BeaconState {
	if s == nil {
		return nil
	}
	cp := &BeaconState{
		GenesisTime:                 s.GenesisTime,
		GenesisValidatorsRoot:       s.GenesisValidatorsRoot,
		Slot:                        s.Slot,
		Fork:                        CopyFork(s.Fork),
		LatestBlockHeader:           CopyBeaconBlockHeader(s.LatestBlockHeader),
		BlockRoots:                  copyRoots(s.BlockRoots),
		StateRoots:                  copyRoots(s.StateRoots),
		HistoricalRoots:             copyRoots(s.HistoricalRoots),
		Eth1Data:                    CopyEth1Data(s.Eth1Data),
		Eth1DepositIndex:            s.Eth1DepositIndex,
		Balances:                    copyUint64s(s.Balances),
		RandaoMixes:                 copyRoots(s.RandaoMixes),
		Slashings:                   copyUint64s(s.Slashings),
		PreviousEpochAttestations:   CopyPendingAttestationSlice(s.PreviousEpochAttestations),
		CurrentEpochAttestations:    CopyPendingAttestationSlice(s.CurrentEpochAttestations),
		JustificationBits:           bitfield.Bitvector4(bytesutil.SafeCopyBytes(s.JustificationBits)),
		PreviousJustifiedCheckpoint: CopyCheckpoint(s.PreviousJustifiedCheckpoint),
		CurrentJustifiedCheckpoint:  CopyCheckpoint(s.CurrentJustifiedCheckpoint),
		FinalizedCheckpoint:         CopyCheckpoint(s.FinalizedCheckpoint),
	}
	if s.Eth1DataVotes != nil {
		cp.Eth1DataVotes = make([]*Eth1Data, len(s.Eth1DataVotes))
		for i, v := range s.Eth1DataVotes {
			cp.Eth1DataVotes[i] = CopyEth1Data(v)
		}
	}
	if s.Validators != nil {
		cp.Validators = make([]*Validator, len(s.Validators))
		for i, v := range s.Validators {
			cp.Validators[i] = CopyValidator(v)
		}
	}
	return cp
}

func copyBitlist(b bitfield.Bitlist) bitfield.Bitlist {
	return bitfield.Bitlist(bytesutil.SafeCopyBytes(b))
}

func copyRoots(roots [][32]byte) [][32]byte {
	if roots == nil {
		return nil
	}
	cp := make([][32]byte, len(roots))
	copy(cp, roots)
	return cp
}

func copyUint64s(v []uint64) []uint64 {
	if v == nil {
		return nil
	}
	cp := make([]uint64, len(v))
	copy(cp, v)
	return cp
}
