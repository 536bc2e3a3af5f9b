// Package bls exposes signature verification as an opaque collaborator. The
// consensus model never inspects keys or signatures; it only asks a
// SignatureVerifier whether a signature over a signing root is valid.
package bls

// SignatureVerifier checks BLS signatures over 32 byte signing roots.
type SignatureVerifier interface {
	// Verify a single signature by a single public key.
	Verify(pubKey []byte, msg [32]byte, sig []byte) (bool, error)
	// FastAggregateVerify checks an aggregate signature by many keys over one message.
	FastAggregateVerify(pubKeys [][]byte, msg [32]byte, sig []byte) (bool, error)
}

// AlwaysValid accepts every signature. It stands in for real cryptography
// where signatures are out of scope.
type AlwaysValid struct{}

// Verify returns true.
func (AlwaysValid) Verify([]byte, [32]byte, []byte) (bool, error) {
	return true, nil
}

// FastAggregateVerify returns true.
func (AlwaysValid) FastAggregateVerify([][]byte, [32]byte, []byte) (bool, error) {
	return true, nil
}

var _ SignatureVerifier = AlwaysValid{}
