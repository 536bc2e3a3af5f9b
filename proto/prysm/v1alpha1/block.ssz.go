package eth

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/prysmaticlabs/gasper/config/params"
)

// HashTreeRoot ssz hashes the BeaconBlockBody object
func (b *BeaconBlockBody) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(b) }

// HashTreeRootWith ssz hashes the BeaconBlockBody object with a hasher
func (b *BeaconBlockBody) HashTreeRootWith(hh *ssz.Hasher) error {
	cfg := params.BeaconConfig()
	indx := hh.Index()
	hh.PutBytes(b.RandaoReveal[:])
	eth1 := b.Eth1Data
	if eth1 == nil {
		eth1 = &Eth1Data{}
	}
	if err := eth1.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.PutBytes(b.Graffiti[:])

	// Field (3) 'ProposerSlashings'
	if err := putContainerList(hh, len(b.ProposerSlashings), cfg.MaxProposerSlashings, func(i int) hashTreeRooter {
		if b.ProposerSlashings[i] == nil {
			return &ProposerSlashing{}
		}
		return b.ProposerSlashings[i]
	}); err != nil {
		return err
	}
	// Field (4) 'AttesterSlashings'
	if err := putContainerList(hh, len(b.AttesterSlashings), cfg.MaxAttesterSlashings, func(i int) hashTreeRooter {
		if b.AttesterSlashings[i] == nil {
			return &AttesterSlashing{}
		}
		return b.AttesterSlashings[i]
	}); err != nil {
		return err
	}
	// Field (5) 'Attestations'
	if err := putContainerList(hh, len(b.Attestations), cfg.MaxAttestations, func(i int) hashTreeRooter {
		if b.Attestations[i] == nil {
			return &Attestation{AggregationBits: []byte{1}}
		}
		return b.Attestations[i]
	}); err != nil {
		return err
	}
	// Field (6) 'Deposits'
	if err := putContainerList(hh, len(b.Deposits), cfg.MaxDeposits, func(i int) hashTreeRooter {
		if b.Deposits[i] == nil {
			return &Deposit{Proof: make([][32]byte, DepositProofLength)}
		}
		return b.Deposits[i]
	}); err != nil {
		return err
	}
	// Field (7) 'VoluntaryExits'
	if err := putContainerList(hh, len(b.VoluntaryExits), cfg.MaxVoluntaryExits, func(i int) hashTreeRooter {
		if b.VoluntaryExits[i] == nil {
			return &SignedVoluntaryExit{}
		}
		return b.VoluntaryExits[i]
	}); err != nil {
		return err
	}
	// Field (8) 'BlsToExecutionChanges'
	if err := putContainerList(hh, len(b.BlsToExecutionChanges), cfg.MaxBlsToExecutionChanges, func(i int) hashTreeRooter {
		if b.BlsToExecutionChanges[i] == nil {
			return &SignedBLSToExecutionChange{}
		}
		return b.BlsToExecutionChanges[i]
	}); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// putContainerList merkleizes a list of containers and mixes in its length.
func putContainerList(hh *ssz.Hasher, num int, limit uint64, item func(i int) hashTreeRooter) error {
	if uint64(num) > limit {
		return ssz.ErrIncorrectListSize
	}
	subIndx := hh.Index()
	for i := 0; i < num; i++ {
		if err := item(i).HashTreeRootWith(hh); err != nil {
			return err
		}
	}
	hh.MerkleizeWithMixin(subIndx, uint64(num), limit)
	return nil
}

// putRootsVector merkleizes a fixed length vector of roots.
func putRootsVector(hh *ssz.Hasher, name string, roots [][32]byte, length uint64) error {
	if uint64(len(roots)) != length {
		return ssz.ErrVectorLengthFn(name, len(roots), int(length))
	}
	subIndx := hh.Index()
	for _, r := range roots {
		hh.Append(r[:])
	}
	hh.Merkleize(subIndx)
	return nil
}

// HashTreeRoot ssz hashes the BeaconBlock object
func (b *BeaconBlock) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(b) }

// HashTreeRootWith ssz hashes the BeaconBlock object with a hasher. The result
// equals the root of the block's header.
func (b *BeaconBlock) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(uint64(b.Slot))
	hh.PutUint64(uint64(b.ProposerIndex))
	hh.PutBytes(b.ParentRoot[:])
	hh.PutBytes(b.StateRoot[:])
	body := b.Body
	if body == nil {
		body = &BeaconBlockBody{}
	}
	if err := body.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot ssz hashes the SignedBeaconBlock object
func (s *SignedBeaconBlock) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(s) }

// HashTreeRootWith ssz hashes the SignedBeaconBlock object with a hasher
func (s *SignedBeaconBlock) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	blk := s.Block
	if blk == nil {
		blk = &BeaconBlock{}
	}
	if err := blk.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.PutBytes(s.Signature[:])
	hh.Merkleize(indx)
	return nil
}
