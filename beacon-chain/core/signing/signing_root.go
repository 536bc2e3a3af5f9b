// Package signing computes signature domains and signing roots and checks
// signatures through the opaque verifier of the bls package.
package signing

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// ForkVersionByteLength length of fork version byte array.
const ForkVersionByteLength = 4

// DomainByteLength length of domain byte array.
const DomainByteLength = 4

// ErrSigFailedToVerify returns when a signature of a block object(ie attestation, slashing, exit... etc)
// failed to verify.
var ErrSigFailedToVerify = errors.New("signature did not verify")

// Roots is any container with a hash tree root.
type Roots interface {
	HashTreeRoot() ([32]byte, error)
}

// ComputeSigningRoot computes the root of the object by calculating the hash tree root of the signing data with the given domain.
func ComputeSigningRoot(object Roots, domain [32]byte) ([32]byte, error) {
	objRoot, err := object.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	container := &ethpb.SigningData{
		ObjectRoot: objRoot,
		Domain:     domain,
	}
	return container.HashTreeRoot()
}

// Domain returns the domain version for BLS private key to sign and verify.
func Domain(fork *ethpb.Fork, epoch types.Epoch, domainType [DomainByteLength]byte, genesisRoot [32]byte) ([32]byte, error) {
	if fork == nil {
		return [32]byte{}, errors.New("nil fork or domain type")
	}
	forkVersion := fork.CurrentVersion
	if epoch < fork.Epoch {
		forkVersion = fork.PreviousVersion
	}
	return ComputeDomain(domainType, forkVersion, genesisRoot)
}

// ComputeDomain returns the domain version for BLS private key to sign and verify: the
// domain type followed by the first 28 bytes of the fork data root.
func ComputeDomain(domainType [DomainByteLength]byte, forkVersion [ForkVersionByteLength]byte, genesisValidatorsRoot [32]byte) ([32]byte, error) {
	forkDataRoot, err := computeForkDataRoot(forkVersion, genesisValidatorsRoot)
	if err != nil {
		return [32]byte{}, err
	}
	var b [32]byte
	copy(b[:4], domainType[:])
	copy(b[4:], forkDataRoot[:28])
	return b, nil
}

// This returns the 32 byte fork data root for the “current_version“ and “genesis_validators_root“.
func computeForkDataRoot(version [ForkVersionByteLength]byte, root [32]byte) ([32]byte, error) {
	r, err := (&ethpb.ForkData{
		CurrentVersion:        version,
		GenesisValidatorsRoot: root,
	}).HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	return r, nil
}

// VerifySigningRoot verifies the signing root of an object given its public key, signature and domain.
func VerifySigningRoot(v bls.SignatureVerifier, obj Roots, pub []byte, signature []byte, domain [32]byte) error {
	root, err := ComputeSigningRoot(obj, domain)
	if err != nil {
		return errors.Wrap(err, "could not compute signing root")
	}
	ok, err := v.Verify(pub, root, signature)
	if err != nil {
		return errors.Wrap(err, "could not verify signature")
	}
	if !ok {
		return ErrSigFailedToVerify
	}
	return nil
}

// ComputeDomainVerifySigningRoot computes domain and verifies signing root of an object given the beacon state, validator index and signature.
func ComputeDomainVerifySigningRoot(v bls.SignatureVerifier, st state.ReadOnlyBeaconState, idx types.ValidatorIndex, epoch types.Epoch, obj Roots, domainType [DomainByteLength]byte, sig []byte) error {
	val, err := st.ValidatorAtIndex(idx)
	if err != nil {
		return err
	}
	d, err := Domain(st.Fork(), epoch, domainType, st.GenesisValidatorsRoot())
	if err != nil {
		return err
	}
	return VerifySigningRoot(v, obj, val.PublicKey[:], sig, d)
}
