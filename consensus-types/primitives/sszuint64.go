package types

import (
	"encoding/binary"
	"fmt"

	fssz "github.com/ferranbt/fastssz"
)

// SSZUint64 is a uint64 type that satisfies the fast-ssz interface.
type SSZUint64 uint64

// SizeSSZ returns the size of the serialized representation.
func (s *SSZUint64) SizeSSZ() int {
	return 8
}

// MarshalSSZTo marshals the uint64 with the provided byte slice.
func (s *SSZUint64) MarshalSSZTo(dst []byte) ([]byte, error) {
	marshalledObj, err := s.MarshalSSZ()
	if err != nil {
		return nil, err
	}
	return append(dst, marshalledObj...), nil
}

// MarshalSSZ marshals uin64 into a serialized object.
func (s *SSZUint64) MarshalSSZ() ([]byte, error) {
	return fssz.MarshalUint64(make([]byte, 0, 8), uint64(*s)), nil
}

// UnmarshalSSZ deserializes the provided bytes buffer into the uint64 object.
func (s *SSZUint64) UnmarshalSSZ(buf []byte) error {
	if len(buf) != s.SizeSSZ() {
		return fmt.Errorf("expected buffer of length %d received %d", s.SizeSSZ(), len(buf))
	}
	*s = SSZUint64(fssz.UnmarshallUint64(buf))
	return nil
}

// HashTreeRoot returns calculated hash root.
func (s *SSZUint64) HashTreeRoot() ([32]byte, error) {
	var root [32]byte
	binary.LittleEndian.PutUint64(root[:8], uint64(*s))
	return root, nil
}
