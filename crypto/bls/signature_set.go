package bls

import (
	"github.com/pkg/errors"
)

// SignatureSet refers to the defined set of
// signatures and its respective public keys and
// messages required to verify it.
type SignatureSet struct {
	Signatures   [][]byte
	PublicKeys   [][]byte
	Messages     [][32]byte
	Descriptions []string
}

// NewSet constructs an empty signature set object.
func NewSet() *SignatureSet {
	return &SignatureSet{
		Signatures:   [][]byte{},
		PublicKeys:   [][]byte{},
		Messages:     [][32]byte{},
		Descriptions: []string{},
	}
}

// Add appends a single signature, its signer and the signed message.
func (s *SignatureSet) Add(pubKey []byte, msg [32]byte, sig []byte, description string) {
	s.Signatures = append(s.Signatures, sig)
	s.PublicKeys = append(s.PublicKeys, pubKey)
	s.Messages = append(s.Messages, msg)
	s.Descriptions = append(s.Descriptions, description)
}

// Join merges the provided signature set to out current one.
func (s *SignatureSet) Join(set *SignatureSet) *SignatureSet {
	s.Signatures = append(s.Signatures, set.Signatures...)
	s.PublicKeys = append(s.PublicKeys, set.PublicKeys...)
	s.Messages = append(s.Messages, set.Messages...)
	s.Descriptions = append(s.Descriptions, set.Descriptions...)
	return s
}

// Verify checks every signature of the set with the provided verifier and
// reports the first one that fails.
func (s *SignatureSet) Verify(v SignatureVerifier) error {
	for i := range s.Signatures {
		valid, err := v.Verify(s.PublicKeys[i], s.Messages[i], s.Signatures[i])
		if err != nil {
			return errors.Wrapf(err, "could not verify %s signature", s.Descriptions[i])
		}
		if !valid {
			return errors.Errorf("%s signature did not verify", s.Descriptions[i])
		}
	}
	return nil
}
