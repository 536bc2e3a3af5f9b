package eth

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
)

// The methods in this file implement the fastssz interfaces for the phase0
// containers. Fixed size containers are fully serializable, every container
// has a hash tree root.

type hashTreeRooter interface {
	HashTreeRootWith(hh *ssz.Hasher) error
}

func hashWithDefaultHasher(v hashTreeRooter) ([32]byte, error) {
	hh := ssz.DefaultHasherPool.Get()
	defer ssz.DefaultHasherPool.Put(hh)
	if err := v.HashTreeRootWith(hh); err != nil {
		return [32]byte{}, err
	}
	return hh.HashRoot()
}

func checkSize(buf []byte, size int) error {
	if len(buf) != size {
		return errors.Wrapf(ssz.ErrSize, "expected %d bytes, got %d", size, len(buf))
	}
	return nil
}

// Fork

// SizeSSZ returns the ssz encoded size in bytes for the Fork object
func (f *Fork) SizeSSZ() int { return 16 }

// MarshalSSZ ssz marshals the Fork object
func (f *Fork) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(f) }

// MarshalSSZTo ssz marshals the Fork object to a target array
func (f *Fork) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, f.PreviousVersion[:]...)
	dst = append(dst, f.CurrentVersion[:]...)
	dst = ssz.MarshalUint64(dst, uint64(f.Epoch))
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the Fork object
func (f *Fork) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 16); err != nil {
		return err
	}
	copy(f.PreviousVersion[:], buf[0:4])
	copy(f.CurrentVersion[:], buf[4:8])
	f.Epoch = types.Epoch(ssz.UnmarshallUint64(buf[8:16]))
	return nil
}

// HashTreeRoot ssz hashes the Fork object
func (f *Fork) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(f) }

// HashTreeRootWith ssz hashes the Fork object with a hasher
func (f *Fork) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(f.PreviousVersion[:])
	hh.PutBytes(f.CurrentVersion[:])
	hh.PutUint64(uint64(f.Epoch))
	hh.Merkleize(indx)
	return nil
}

// ForkData

// SizeSSZ returns the ssz encoded size in bytes for the ForkData object
func (f *ForkData) SizeSSZ() int { return 36 }

// MarshalSSZ ssz marshals the ForkData object
func (f *ForkData) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(f) }

// MarshalSSZTo ssz marshals the ForkData object to a target array
func (f *ForkData) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, f.CurrentVersion[:]...)
	dst = append(dst, f.GenesisValidatorsRoot[:]...)
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the ForkData object
func (f *ForkData) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 36); err != nil {
		return err
	}
	copy(f.CurrentVersion[:], buf[0:4])
	copy(f.GenesisValidatorsRoot[:], buf[4:36])
	return nil
}

// HashTreeRoot ssz hashes the ForkData object
func (f *ForkData) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(f) }

// HashTreeRootWith ssz hashes the ForkData object with a hasher
func (f *ForkData) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(f.CurrentVersion[:])
	hh.PutBytes(f.GenesisValidatorsRoot[:])
	hh.Merkleize(indx)
	return nil
}

// Checkpoint

// SizeSSZ returns the ssz encoded size in bytes for the Checkpoint object
func (c *Checkpoint) SizeSSZ() int { return 40 }

// MarshalSSZ ssz marshals the Checkpoint object
func (c *Checkpoint) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(c) }

// MarshalSSZTo ssz marshals the Checkpoint object to a target array
func (c *Checkpoint) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(c.Epoch))
	dst = append(dst, c.Root[:]...)
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the Checkpoint object
func (c *Checkpoint) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 40); err != nil {
		return err
	}
	c.Epoch = types.Epoch(ssz.UnmarshallUint64(buf[0:8]))
	copy(c.Root[:], buf[8:40])
	return nil
}

// HashTreeRoot ssz hashes the Checkpoint object
func (c *Checkpoint) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(c) }

// HashTreeRootWith ssz hashes the Checkpoint object with a hasher
func (c *Checkpoint) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(uint64(c.Epoch))
	hh.PutBytes(c.Root[:])
	hh.Merkleize(indx)
	return nil
}

// AttestationData

// SizeSSZ returns the ssz encoded size in bytes for the AttestationData object
func (a *AttestationData) SizeSSZ() int { return 128 }

// MarshalSSZ ssz marshals the AttestationData object
func (a *AttestationData) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(a) }

// MarshalSSZTo ssz marshals the AttestationData object to a target array
func (a *AttestationData) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(a.Slot))
	dst = ssz.MarshalUint64(dst, uint64(a.CommitteeIndex))
	dst = append(dst, a.BeaconBlockRoot[:]...)
	var err error
	if dst, err = checkpointOrEmpty(a.Source).MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	return checkpointOrEmpty(a.Target).MarshalSSZTo(dst)
}

// UnmarshalSSZ ssz unmarshals the AttestationData object
func (a *AttestationData) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 128); err != nil {
		return err
	}
	a.Slot = types.Slot(ssz.UnmarshallUint64(buf[0:8]))
	a.CommitteeIndex = types.CommitteeIndex(ssz.UnmarshallUint64(buf[8:16]))
	copy(a.BeaconBlockRoot[:], buf[16:48])
	a.Source = new(Checkpoint)
	if err := a.Source.UnmarshalSSZ(buf[48:88]); err != nil {
		return err
	}
	a.Target = new(Checkpoint)
	return a.Target.UnmarshalSSZ(buf[88:128])
}

// HashTreeRoot ssz hashes the AttestationData object
func (a *AttestationData) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(a) }

// HashTreeRootWith ssz hashes the AttestationData object with a hasher
func (a *AttestationData) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(uint64(a.Slot))
	hh.PutUint64(uint64(a.CommitteeIndex))
	hh.PutBytes(a.BeaconBlockRoot[:])
	if err := checkpointOrEmpty(a.Source).HashTreeRootWith(hh); err != nil {
		return err
	}
	if err := checkpointOrEmpty(a.Target).HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

func checkpointOrEmpty(c *Checkpoint) *Checkpoint {
	if c == nil {
		return &Checkpoint{}
	}
	return c
}

// Attestation

// HashTreeRoot ssz hashes the Attestation object
func (a *Attestation) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(a) }

// HashTreeRootWith ssz hashes the Attestation object with a hasher
func (a *Attestation) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if err := putBitlist(hh, a.AggregationBits); err != nil {
		return err
	}
	if err := attestationDataOrEmpty(a.Data).HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.PutBytes(a.Signature[:])
	hh.Merkleize(indx)
	return nil
}

// PendingAttestation

// HashTreeRoot ssz hashes the PendingAttestation object
func (p *PendingAttestation) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(p) }

// HashTreeRootWith ssz hashes the PendingAttestation object with a hasher
func (p *PendingAttestation) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	if err := putBitlist(hh, p.AggregationBits); err != nil {
		return err
	}
	if err := attestationDataOrEmpty(p.Data).HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.PutUint64(uint64(p.InclusionDelay))
	hh.PutUint64(uint64(p.ProposerIndex))
	hh.Merkleize(indx)
	return nil
}

func putBitlist(hh *ssz.Hasher, bits []byte) error {
	if len(bits) == 0 {
		return errors.Wrap(ssz.ErrEmptyBitlist, "aggregation bits")
	}
	if err := ssz.ValidateBitlist(bits, MaxValidatorsPerCommitteeLimit); err != nil {
		return err
	}
	hh.PutBitlist(bits, MaxValidatorsPerCommitteeLimit)
	return nil
}

func attestationDataOrEmpty(d *AttestationData) *AttestationData {
	if d == nil {
		return &AttestationData{}
	}
	return d
}

// IndexedAttestation

// HashTreeRoot ssz hashes the IndexedAttestation object
func (i *IndexedAttestation) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(i) }

// HashTreeRootWith ssz hashes the IndexedAttestation object with a hasher
func (i *IndexedAttestation) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	{
		if len(i.AttestingIndices) > MaxValidatorsPerCommitteeLimit {
			return ssz.ErrIncorrectListSize
		}
		subIndx := hh.Index()
		for _, v := range i.AttestingIndices {
			hh.AppendUint64(uint64(v))
		}
		hh.FillUpTo32()
		numItems := uint64(len(i.AttestingIndices))
		hh.MerkleizeWithMixin(subIndx, numItems, ssz.CalculateLimit(MaxValidatorsPerCommitteeLimit, numItems, 8))
	}
	if err := attestationDataOrEmpty(i.Data).HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.PutBytes(i.Signature[:])
	hh.Merkleize(indx)
	return nil
}

// Eth1Data

// SizeSSZ returns the ssz encoded size in bytes for the Eth1Data object
func (e *Eth1Data) SizeSSZ() int { return 72 }

// MarshalSSZ ssz marshals the Eth1Data object
func (e *Eth1Data) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(e) }

// MarshalSSZTo ssz marshals the Eth1Data object to a target array
func (e *Eth1Data) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, e.DepositRoot[:]...)
	dst = ssz.MarshalUint64(dst, e.DepositCount)
	dst = append(dst, e.BlockHash[:]...)
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the Eth1Data object
func (e *Eth1Data) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 72); err != nil {
		return err
	}
	copy(e.DepositRoot[:], buf[0:32])
	e.DepositCount = ssz.UnmarshallUint64(buf[32:40])
	copy(e.BlockHash[:], buf[40:72])
	return nil
}

// HashTreeRoot ssz hashes the Eth1Data object
func (e *Eth1Data) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(e) }

// HashTreeRootWith ssz hashes the Eth1Data object with a hasher
func (e *Eth1Data) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(e.DepositRoot[:])
	hh.PutUint64(e.DepositCount)
	hh.PutBytes(e.BlockHash[:])
	hh.Merkleize(indx)
	return nil
}

// BeaconBlockHeader

// SizeSSZ returns the ssz encoded size in bytes for the BeaconBlockHeader object
func (b *BeaconBlockHeader) SizeSSZ() int { return 112 }

// MarshalSSZ ssz marshals the BeaconBlockHeader object
func (b *BeaconBlockHeader) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(b) }

// MarshalSSZTo ssz marshals the BeaconBlockHeader object to a target array
func (b *BeaconBlockHeader) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(b.Slot))
	dst = ssz.MarshalUint64(dst, uint64(b.ProposerIndex))
	dst = append(dst, b.ParentRoot[:]...)
	dst = append(dst, b.StateRoot[:]...)
	dst = append(dst, b.BodyRoot[:]...)
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the BeaconBlockHeader object
func (b *BeaconBlockHeader) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 112); err != nil {
		return err
	}
	b.Slot = types.Slot(ssz.UnmarshallUint64(buf[0:8]))
	b.ProposerIndex = types.ValidatorIndex(ssz.UnmarshallUint64(buf[8:16]))
	copy(b.ParentRoot[:], buf[16:48])
	copy(b.StateRoot[:], buf[48:80])
	copy(b.BodyRoot[:], buf[80:112])
	return nil
}

// HashTreeRoot ssz hashes the BeaconBlockHeader object
func (b *BeaconBlockHeader) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(b) }

// HashTreeRootWith ssz hashes the BeaconBlockHeader object with a hasher
func (b *BeaconBlockHeader) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(uint64(b.Slot))
	hh.PutUint64(uint64(b.ProposerIndex))
	hh.PutBytes(b.ParentRoot[:])
	hh.PutBytes(b.StateRoot[:])
	hh.PutBytes(b.BodyRoot[:])
	hh.Merkleize(indx)
	return nil
}

// SignedBeaconBlockHeader

// SizeSSZ returns the ssz encoded size in bytes for the SignedBeaconBlockHeader object
func (s *SignedBeaconBlockHeader) SizeSSZ() int { return 208 }

// MarshalSSZ ssz marshals the SignedBeaconBlockHeader object
func (s *SignedBeaconBlockHeader) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(s) }

// MarshalSSZTo ssz marshals the SignedBeaconBlockHeader object to a target array
func (s *SignedBeaconBlockHeader) MarshalSSZTo(dst []byte) ([]byte, error) {
	header := s.Header
	if header == nil {
		header = &BeaconBlockHeader{}
	}
	dst, err := header.MarshalSSZTo(dst)
	if err != nil {
		return nil, err
	}
	return append(dst, s.Signature[:]...), nil
}

// UnmarshalSSZ ssz unmarshals the SignedBeaconBlockHeader object
func (s *SignedBeaconBlockHeader) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 208); err != nil {
		return err
	}
	s.Header = new(BeaconBlockHeader)
	if err := s.Header.UnmarshalSSZ(buf[0:112]); err != nil {
		return err
	}
	copy(s.Signature[:], buf[112:208])
	return nil
}

// HashTreeRoot ssz hashes the SignedBeaconBlockHeader object
func (s *SignedBeaconBlockHeader) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(s) }

// HashTreeRootWith ssz hashes the SignedBeaconBlockHeader object with a hasher
func (s *SignedBeaconBlockHeader) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	header := s.Header
	if header == nil {
		header = &BeaconBlockHeader{}
	}
	if err := header.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.PutBytes(s.Signature[:])
	hh.Merkleize(indx)
	return nil
}

// ProposerSlashing

// SizeSSZ returns the ssz encoded size in bytes for the ProposerSlashing object
func (p *ProposerSlashing) SizeSSZ() int { return 416 }

// MarshalSSZ ssz marshals the ProposerSlashing object
func (p *ProposerSlashing) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(p) }

// MarshalSSZTo ssz marshals the ProposerSlashing object to a target array
func (p *ProposerSlashing) MarshalSSZTo(dst []byte) ([]byte, error) {
	var err error
	for _, h := range []*SignedBeaconBlockHeader{p.Header_1, p.Header_2} {
		if h == nil {
			h = &SignedBeaconBlockHeader{}
		}
		if dst, err = h.MarshalSSZTo(dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the ProposerSlashing object
func (p *ProposerSlashing) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 416); err != nil {
		return err
	}
	p.Header_1 = new(SignedBeaconBlockHeader)
	if err := p.Header_1.UnmarshalSSZ(buf[0:208]); err != nil {
		return err
	}
	p.Header_2 = new(SignedBeaconBlockHeader)
	return p.Header_2.UnmarshalSSZ(buf[208:416])
}

// HashTreeRoot ssz hashes the ProposerSlashing object
func (p *ProposerSlashing) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(p) }

// HashTreeRootWith ssz hashes the ProposerSlashing object with a hasher
func (p *ProposerSlashing) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	for _, h := range []*SignedBeaconBlockHeader{p.Header_1, p.Header_2} {
		if h == nil {
			h = &SignedBeaconBlockHeader{}
		}
		if err := h.HashTreeRootWith(hh); err != nil {
			return err
		}
	}
	hh.Merkleize(indx)
	return nil
}

// AttesterSlashing

// HashTreeRoot ssz hashes the AttesterSlashing object
func (a *AttesterSlashing) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(a) }

// HashTreeRootWith ssz hashes the AttesterSlashing object with a hasher
func (a *AttesterSlashing) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	for _, att := range []*IndexedAttestation{a.Attestation_1, a.Attestation_2} {
		if att == nil {
			att = &IndexedAttestation{}
		}
		if err := att.HashTreeRootWith(hh); err != nil {
			return err
		}
	}
	hh.Merkleize(indx)
	return nil
}

// DepositMessage

// HashTreeRoot ssz hashes the DepositMessage object
func (d *DepositMessage) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(d) }

// HashTreeRootWith ssz hashes the DepositMessage object with a hasher
func (d *DepositMessage) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(d.PublicKey[:])
	hh.PutBytes(d.WithdrawalCredentials[:])
	hh.PutUint64(d.Amount)
	hh.Merkleize(indx)
	return nil
}

// DepositData

// SizeSSZ returns the ssz encoded size in bytes for the DepositData object
func (d *DepositData) SizeSSZ() int { return 184 }

// MarshalSSZ ssz marshals the DepositData object
func (d *DepositData) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(d) }

// MarshalSSZTo ssz marshals the DepositData object to a target array
func (d *DepositData) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, d.PublicKey[:]...)
	dst = append(dst, d.WithdrawalCredentials[:]...)
	dst = ssz.MarshalUint64(dst, d.Amount)
	dst = append(dst, d.Signature[:]...)
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the DepositData object
func (d *DepositData) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 184); err != nil {
		return err
	}
	copy(d.PublicKey[:], buf[0:48])
	copy(d.WithdrawalCredentials[:], buf[48:80])
	d.Amount = ssz.UnmarshallUint64(buf[80:88])
	copy(d.Signature[:], buf[88:184])
	return nil
}

// HashTreeRoot ssz hashes the DepositData object
func (d *DepositData) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(d) }

// HashTreeRootWith ssz hashes the DepositData object with a hasher
func (d *DepositData) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(d.PublicKey[:])
	hh.PutBytes(d.WithdrawalCredentials[:])
	hh.PutUint64(d.Amount)
	hh.PutBytes(d.Signature[:])
	hh.Merkleize(indx)
	return nil
}

// Deposit

// SizeSSZ returns the ssz encoded size in bytes for the Deposit object
func (d *Deposit) SizeSSZ() int { return DepositProofLength*32 + 184 }

// MarshalSSZ ssz marshals the Deposit object
func (d *Deposit) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(d) }

// MarshalSSZTo ssz marshals the Deposit object to a target array
func (d *Deposit) MarshalSSZTo(dst []byte) ([]byte, error) {
	if len(d.Proof) != DepositProofLength {
		return nil, ssz.ErrVectorLengthFn("Deposit.Proof", len(d.Proof), DepositProofLength)
	}
	for _, p := range d.Proof {
		dst = append(dst, p[:]...)
	}
	data := d.Data
	if data == nil {
		data = &DepositData{}
	}
	return data.MarshalSSZTo(dst)
}

// UnmarshalSSZ ssz unmarshals the Deposit object
func (d *Deposit) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, d.SizeSSZ()); err != nil {
		return err
	}
	d.Proof = make([][32]byte, DepositProofLength)
	for i := range d.Proof {
		copy(d.Proof[i][:], buf[i*32:(i+1)*32])
	}
	d.Data = new(DepositData)
	return d.Data.UnmarshalSSZ(buf[DepositProofLength*32:])
}

// HashTreeRoot ssz hashes the Deposit object
func (d *Deposit) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(d) }

// HashTreeRootWith ssz hashes the Deposit object with a hasher
func (d *Deposit) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	{
		if len(d.Proof) != DepositProofLength {
			return ssz.ErrVectorLengthFn("Deposit.Proof", len(d.Proof), DepositProofLength)
		}
		subIndx := hh.Index()
		for _, p := range d.Proof {
			hh.Append(p[:])
		}
		hh.Merkleize(subIndx)
	}
	data := d.Data
	if data == nil {
		data = &DepositData{}
	}
	if err := data.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// VoluntaryExit

// SizeSSZ returns the ssz encoded size in bytes for the VoluntaryExit object
func (v *VoluntaryExit) SizeSSZ() int { return 16 }

// MarshalSSZ ssz marshals the VoluntaryExit object
func (v *VoluntaryExit) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(v) }

// MarshalSSZTo ssz marshals the VoluntaryExit object to a target array
func (v *VoluntaryExit) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(v.Epoch))
	dst = ssz.MarshalUint64(dst, uint64(v.ValidatorIndex))
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the VoluntaryExit object
func (v *VoluntaryExit) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 16); err != nil {
		return err
	}
	v.Epoch = types.Epoch(ssz.UnmarshallUint64(buf[0:8]))
	v.ValidatorIndex = types.ValidatorIndex(ssz.UnmarshallUint64(buf[8:16]))
	return nil
}

// HashTreeRoot ssz hashes the VoluntaryExit object
func (v *VoluntaryExit) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(v) }

// HashTreeRootWith ssz hashes the VoluntaryExit object with a hasher
func (v *VoluntaryExit) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(uint64(v.Epoch))
	hh.PutUint64(uint64(v.ValidatorIndex))
	hh.Merkleize(indx)
	return nil
}

// SignedVoluntaryExit

// SizeSSZ returns the ssz encoded size in bytes for the SignedVoluntaryExit object
func (s *SignedVoluntaryExit) SizeSSZ() int { return 112 }

// MarshalSSZ ssz marshals the SignedVoluntaryExit object
func (s *SignedVoluntaryExit) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(s) }

// MarshalSSZTo ssz marshals the SignedVoluntaryExit object to a target array
func (s *SignedVoluntaryExit) MarshalSSZTo(dst []byte) ([]byte, error) {
	exit := s.Exit
	if exit == nil {
		exit = &VoluntaryExit{}
	}
	dst, err := exit.MarshalSSZTo(dst)
	if err != nil {
		return nil, err
	}
	return append(dst, s.Signature[:]...), nil
}

// UnmarshalSSZ ssz unmarshals the SignedVoluntaryExit object
func (s *SignedVoluntaryExit) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 112); err != nil {
		return err
	}
	s.Exit = new(VoluntaryExit)
	if err := s.Exit.UnmarshalSSZ(buf[0:16]); err != nil {
		return err
	}
	copy(s.Signature[:], buf[16:112])
	return nil
}

// HashTreeRoot ssz hashes the SignedVoluntaryExit object
func (s *SignedVoluntaryExit) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(s) }

// HashTreeRootWith ssz hashes the SignedVoluntaryExit object with a hasher
func (s *SignedVoluntaryExit) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	exit := s.Exit
	if exit == nil {
		exit = &VoluntaryExit{}
	}
	if err := exit.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.PutBytes(s.Signature[:])
	hh.Merkleize(indx)
	return nil
}

// BLSToExecutionChange

// SizeSSZ returns the ssz encoded size in bytes for the BLSToExecutionChange object
func (b *BLSToExecutionChange) SizeSSZ() int { return 76 }

// MarshalSSZ ssz marshals the BLSToExecutionChange object
func (b *BLSToExecutionChange) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(b) }

// MarshalSSZTo ssz marshals the BLSToExecutionChange object to a target array
func (b *BLSToExecutionChange) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(b.ValidatorIndex))
	dst = append(dst, b.FromBlsPubkey[:]...)
	dst = append(dst, b.ToExecutionAddress[:]...)
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the BLSToExecutionChange object
func (b *BLSToExecutionChange) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 76); err != nil {
		return err
	}
	b.ValidatorIndex = types.ValidatorIndex(ssz.UnmarshallUint64(buf[0:8]))
	copy(b.FromBlsPubkey[:], buf[8:56])
	copy(b.ToExecutionAddress[:], buf[56:76])
	return nil
}

// HashTreeRoot ssz hashes the BLSToExecutionChange object
func (b *BLSToExecutionChange) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(b) }

// HashTreeRootWith ssz hashes the BLSToExecutionChange object with a hasher
func (b *BLSToExecutionChange) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(uint64(b.ValidatorIndex))
	hh.PutBytes(b.FromBlsPubkey[:])
	hh.PutBytes(b.ToExecutionAddress[:])
	hh.Merkleize(indx)
	return nil
}

// SignedBLSToExecutionChange

// SizeSSZ returns the ssz encoded size in bytes for the SignedBLSToExecutionChange object
func (s *SignedBLSToExecutionChange) SizeSSZ() int { return 172 }

// MarshalSSZ ssz marshals the SignedBLSToExecutionChange object
func (s *SignedBLSToExecutionChange) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(s) }

// MarshalSSZTo ssz marshals the SignedBLSToExecutionChange object to a target array
func (s *SignedBLSToExecutionChange) MarshalSSZTo(dst []byte) ([]byte, error) {
	msg := s.Message
	if msg == nil {
		msg = &BLSToExecutionChange{}
	}
	dst, err := msg.MarshalSSZTo(dst)
	if err != nil {
		return nil, err
	}
	return append(dst, s.Signature[:]...), nil
}

// UnmarshalSSZ ssz unmarshals the SignedBLSToExecutionChange object
func (s *SignedBLSToExecutionChange) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 172); err != nil {
		return err
	}
	s.Message = new(BLSToExecutionChange)
	if err := s.Message.UnmarshalSSZ(buf[0:76]); err != nil {
		return err
	}
	copy(s.Signature[:], buf[76:172])
	return nil
}

// HashTreeRoot ssz hashes the SignedBLSToExecutionChange object
func (s *SignedBLSToExecutionChange) HashTreeRoot() ([32]byte, error) {
	return hashWithDefaultHasher(s)
}

// HashTreeRootWith ssz hashes the SignedBLSToExecutionChange object with a hasher
func (s *SignedBLSToExecutionChange) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	msg := s.Message
	if msg == nil {
		msg = &BLSToExecutionChange{}
	}
	if err := msg.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.PutBytes(s.Signature[:])
	hh.Merkleize(indx)
	return nil
}

// Validator

// SizeSSZ returns the ssz encoded size in bytes for the Validator object
func (v *Validator) SizeSSZ() int { return 121 }

// MarshalSSZ ssz marshals the Validator object
func (v *Validator) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(v) }

// MarshalSSZTo ssz marshals the Validator object to a target array
func (v *Validator) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, v.PublicKey[:]...)
	dst = append(dst, v.WithdrawalCredentials[:]...)
	dst = ssz.MarshalUint64(dst, v.EffectiveBalance)
	dst = ssz.MarshalBool(dst, v.Slashed)
	dst = ssz.MarshalUint64(dst, uint64(v.ActivationEligibilityEpoch))
	dst = ssz.MarshalUint64(dst, uint64(v.ActivationEpoch))
	dst = ssz.MarshalUint64(dst, uint64(v.ExitEpoch))
	dst = ssz.MarshalUint64(dst, uint64(v.WithdrawableEpoch))
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the Validator object
func (v *Validator) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 121); err != nil {
		return err
	}
	copy(v.PublicKey[:], buf[0:48])
	copy(v.WithdrawalCredentials[:], buf[48:80])
	v.EffectiveBalance = ssz.UnmarshallUint64(buf[80:88])
	if buf[88] > 1 {
		return errors.Wrap(ssz.ErrSize, "invalid bool byte for Validator.Slashed")
	}
	v.Slashed = ssz.UnmarshalBool(buf[88:89])
	v.ActivationEligibilityEpoch = types.Epoch(ssz.UnmarshallUint64(buf[89:97]))
	v.ActivationEpoch = types.Epoch(ssz.UnmarshallUint64(buf[97:105]))
	v.ExitEpoch = types.Epoch(ssz.UnmarshallUint64(buf[105:113]))
	v.WithdrawableEpoch = types.Epoch(ssz.UnmarshallUint64(buf[113:121]))
	return nil
}

// HashTreeRoot ssz hashes the Validator object
func (v *Validator) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(v) }

// HashTreeRootWith ssz hashes the Validator object with a hasher
func (v *Validator) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(v.PublicKey[:])
	hh.PutBytes(v.WithdrawalCredentials[:])
	hh.PutUint64(v.EffectiveBalance)
	hh.PutBool(v.Slashed)
	hh.PutUint64(uint64(v.ActivationEligibilityEpoch))
	hh.PutUint64(uint64(v.ActivationEpoch))
	hh.PutUint64(uint64(v.ExitEpoch))
	hh.PutUint64(uint64(v.WithdrawableEpoch))
	hh.Merkleize(indx)
	return nil
}

// SigningData

// SizeSSZ returns the ssz encoded size in bytes for the SigningData object
func (s *SigningData) SizeSSZ() int { return 64 }

// MarshalSSZ ssz marshals the SigningData object
func (s *SigningData) MarshalSSZ() ([]byte, error) { return ssz.MarshalSSZ(s) }

// MarshalSSZTo ssz marshals the SigningData object to a target array
func (s *SigningData) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, s.ObjectRoot[:]...)
	return append(dst, s.Domain[:]...), nil
}

// UnmarshalSSZ ssz unmarshals the SigningData object
func (s *SigningData) UnmarshalSSZ(buf []byte) error {
	if err := checkSize(buf, 64); err != nil {
		return err
	}
	copy(s.ObjectRoot[:], buf[0:32])
	copy(s.Domain[:], buf[32:64])
	return nil
}

// HashTreeRoot ssz hashes the SigningData object
func (s *SigningData) HashTreeRoot() ([32]byte, error) { return hashWithDefaultHasher(s) }

// HashTreeRootWith ssz hashes the SigningData object with a hasher
func (s *SigningData) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(s.ObjectRoot[:])
	hh.PutBytes(s.Domain[:])
	hh.Merkleize(indx)
	return nil
}
