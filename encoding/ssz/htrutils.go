package ssz

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	"github.com/prysmaticlabs/go-bitfield"
)

// Uint64Root computes the HashTreeRoot Merkleization of
// a simple uint64 value according to Simple Serialize.
func Uint64Root(val uint64) [32]byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, val)
	root := bytesutil.ToBytes32(buf)
	return root
}

// ByteSliceRoot merkleizes a fixed size byte vector of maxLength bytes.
func ByteSliceRoot(slice []byte, maxLength uint64) ([32]byte, error) {
	if uint64(len(slice)) > maxLength {
		return [32]byte{}, errors.Errorf("byte slice of length %d exceeds %d", len(slice), maxLength)
	}
	chunks, err := Pack([][]byte{bytesutil.PadTo(bytesutil.SafeCopyBytes(slice), int(maxLength))})
	if err != nil {
		return [32]byte{}, err
	}
	return BitwiseMerkleize(hash.CustomSHA256Hasher(), chunks, uint64(len(chunks)), uint64(len(chunks)))
}

// RootsVectorRoot computes the root of a fixed length vector of 32 byte roots.
func RootsVectorRoot(roots [][32]byte, length uint64) ([32]byte, error) {
	return MerkleizeVector(roots, length)
}

// MerkleizeListRoots computes the root of a list of 32 byte roots bounded by
// limit, with the list length mixed in.
func MerkleizeListRoots(roots [][32]byte, limit uint64) ([32]byte, error) {
	body, err := MerkleizeVector(roots, limit)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not merkleize roots")
	}
	return MixInLength(body, bytesutil.Bytes32(uint64(len(roots)))), nil
}

// Uint64VectorRoot packs a fixed length vector of uint64 values and returns
// its root.
func Uint64VectorRoot(values []uint64, length uint64) ([32]byte, error) {
	if uint64(len(values)) > length {
		return [32]byte{}, errors.Errorf("vector of %d values exceeds length %d", len(values), length)
	}
	chunks := packUint64s(values)
	return MerkleizeVector(chunks, (length+3)/4)
}

// Uint64ListRoot packs a list of uint64 values bounded by limit and mixes in
// its length.
func Uint64ListRoot(values []uint64, limit uint64) ([32]byte, error) {
	if uint64(len(values)) > limit {
		return [32]byte{}, errors.Errorf("list of %d values exceeds limit %d", len(values), limit)
	}
	body, err := MerkleizeVector(packUint64s(values), (limit+3)/4)
	if err != nil {
		return [32]byte{}, err
	}
	return MixInLength(body, bytesutil.Bytes32(uint64(len(values)))), nil
}

// BitlistRoot returns the mix in length of a bitwise Merkleized bitfield.
func BitlistRoot(bfield bitfield.Bitlist, maxCapacity uint64) ([32]byte, error) {
	limit := (maxCapacity + 255) / 256
	if bfield == nil || bfield.Len() == 0 {
		length := make([]byte, 32)
		root, err := BitwiseMerkleize(hash.CustomSHA256Hasher(), [][]byte{}, 0, limit)
		if err != nil {
			return [32]byte{}, err
		}
		return MixInLength(root, length), nil
	}
	if bfield.Len() > maxCapacity {
		return [32]byte{}, errors.Errorf("bitlist of length %d exceeds capacity %d", bfield.Len(), maxCapacity)
	}
	chunks, err := Pack([][]byte{bfield.Bytes()})
	if err != nil {
		return [32]byte{}, err
	}
	buf := new([32]byte)
	binary.LittleEndian.PutUint64(buf[:], bfield.Len())
	output := make([]byte, 32)
	copy(output, buf[:])
	root, err := BitwiseMerkleize(hash.CustomSHA256Hasher(), chunks, uint64(len(chunks)), limit)
	if err != nil {
		return [32]byte{}, err
	}
	return MixInLength(root, output), nil
}

// BitvectorRoot merkleizes a fixed size bitvector.
func BitvectorRoot(bfield []byte) ([32]byte, error) {
	if len(bfield) == 0 {
		return [32]byte{}, errInvalidNilSlice
	}
	chunks, err := Pack([][]byte{bfield})
	if err != nil {
		return [32]byte{}, err
	}
	return BitwiseMerkleize(hash.CustomSHA256Hasher(), chunks, uint64(len(chunks)), uint64(len(chunks)))
}

func packUint64s(values []uint64) [][32]byte {
	chunks := make([][32]byte, (len(values)+3)/4)
	for i, v := range values {
		binary.LittleEndian.PutUint64(chunks[i/4][(i%4)*8:], v)
	}
	return chunks
}
