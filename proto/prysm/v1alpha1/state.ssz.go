package eth

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/prysmaticlabs/gasper/config/params"
)

// HistoricalRootsLimit bounds the historical roots list of the state.
const HistoricalRootsLimit = 16777216

// HashTreeRoot ssz hashes the BeaconState object
func (s *BeaconState) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(s) }

// HashTreeRootWith ssz hashes the BeaconState object with a hasher. Vector
// fields must have the lengths set by the active beacon config.
func (s *BeaconState) HashTreeRootWith(hh *ssz.Hasher) error {
	cfg := params.BeaconConfig()
	indx := hh.Index()

	hh.PutUint64(s.GenesisTime)
	hh.PutBytes(s.GenesisValidatorsRoot[:])
	hh.PutUint64(uint64(s.Slot))
	fork := s.Fork
	if fork == nil {
		fork = &Fork{}
	}
	if err := fork.HashTreeRootWith(hh); err != nil {
		return err
	}
	header := s.LatestBlockHeader
	if header == nil {
		header = &BeaconBlockHeader{}
	}
	if err := header.HashTreeRootWith(hh); err != nil {
		return err
	}
	if err := putRootsVector(hh, "BeaconState.BlockRoots", s.BlockRoots, uint64(cfg.SlotsPerHistoricalRoot)); err != nil {
		return err
	}
	if err := putRootsVector(hh, "BeaconState.StateRoots", s.StateRoots, uint64(cfg.SlotsPerHistoricalRoot)); err != nil {
		return err
	}

	// Field (7) 'HistoricalRoots'
	{
		if len(s.HistoricalRoots) > HistoricalRootsLimit {
			return ssz.ErrIncorrectListSize
		}
		subIndx := hh.Index()
		for _, r := range s.HistoricalRoots {
			hh.Append(r[:])
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(s.HistoricalRoots)), HistoricalRootsLimit)
	}

	eth1 := s.Eth1Data
	if eth1 == nil {
		eth1 = &Eth1Data{}
	}
	if err := eth1.HashTreeRootWith(hh); err != nil {
		return err
	}
	votesLimit := uint64(cfg.EpochsPerEth1VotingPeriod) * uint64(cfg.SlotsPerEpoch)
	if err := putContainerList(hh, len(s.Eth1DataVotes), votesLimit, func(i int) hashTreeRooter {
		if s.Eth1DataVotes[i] == nil {
			return &Eth1Data{}
		}
		return s.Eth1DataVotes[i]
	}); err != nil {
		return err
	}
	hh.PutUint64(s.Eth1DepositIndex)
	if err := putContainerList(hh, len(s.Validators), cfg.ValidatorRegistryLimit, func(i int) hashTreeRooter {
		if s.Validators[i] == nil {
			return &Validator{}
		}
		return s.Validators[i]
	}); err != nil {
		return err
	}

	// Field (12) 'Balances'
	{
		if uint64(len(s.Balances)) > cfg.ValidatorRegistryLimit {
			return ssz.ErrIncorrectListSize
		}
		subIndx := hh.Index()
		for _, b := range s.Balances {
			hh.AppendUint64(b)
		}
		hh.FillUpTo32()
		numItems := uint64(len(s.Balances))
		hh.MerkleizeWithMixin(subIndx, numItems, ssz.CalculateLimit(cfg.ValidatorRegistryLimit, numItems, 8))
	}

	if err := putRootsVector(hh, "BeaconState.RandaoMixes", s.RandaoMixes, uint64(cfg.EpochsPerHistoricalVector)); err != nil {
		return err
	}

	// Field (14) 'Slashings'
	{
		if uint64(len(s.Slashings)) != uint64(cfg.EpochsPerSlashingsVector) {
			return ssz.ErrVectorLengthFn("BeaconState.Slashings", len(s.Slashings), int(cfg.EpochsPerSlashingsVector))
		}
		subIndx := hh.Index()
		for _, v := range s.Slashings {
			hh.AppendUint64(v)
		}
		hh.FillUpTo32()
		hh.Merkleize(subIndx)
	}

	attsLimit := cfg.MaxAttestations * uint64(cfg.SlotsPerEpoch)
	for _, atts := range [][]*PendingAttestation{s.PreviousEpochAttestations, s.CurrentEpochAttestations} {
		atts := atts
		if err := putContainerList(hh, len(atts), attsLimit, func(i int) hashTreeRooter {
			if atts[i] == nil {
				return &PendingAttestation{AggregationBits: []byte{1}}
			}
			return atts[i]
		}); err != nil {
			return err
		}
	}

	// Field (17) 'JustificationBits'
	{
		bits := s.JustificationBits
		if len(bits) != 1 {
			return ssz.ErrBytesLengthFn("BeaconState.JustificationBits", len(bits), 1)
		}
		hh.PutBytes(bits)
	}

	for _, c := range []*Checkpoint{s.PreviousJustifiedCheckpoint, s.CurrentJustifiedCheckpoint, s.FinalizedCheckpoint} {
		if err := checkpointOrEmpty(c).HashTreeRootWith(hh); err != nil {
			return err
		}
	}
	hh.Merkleize(indx)
	return nil
}
