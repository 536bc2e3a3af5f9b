package ssz

import (
	"encoding/binary"

	fssz "github.com/ferranbt/fastssz"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ErrUnsupportedType is returned for values the codec has no encoding for.
var ErrUnsupportedType = errors.New("unsupported ssz type")

// Uint128 is an unsigned 128 bit integer, serialized as 16 little endian bytes.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// SizeOf returns the fixed serialized length of a basic value, or of a
// fixed size container.
func SizeOf(v interface{}) (int, error) {
	switch t := v.(type) {
	case bool, *bool, uint8, *uint8:
		return 1, nil
	case uint16, *uint16:
		return 2, nil
	case uint32, *uint32:
		return 4, nil
	case uint64, *uint64:
		return 8, nil
	case Uint128, *Uint128:
		return 16, nil
	case uint256.Int, *uint256.Int:
		return 32, nil
	case fssz.Marshaler:
		return t.SizeSSZ(), nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedType, "%T", v)
	}
}

// Marshal serializes a basic value or a fastssz container.
func Marshal(v interface{}) ([]byte, error) {
	switch t := v.(type) {
	case bool:
		return fssz.MarshalBool(nil, t), nil
	case *bool:
		return fssz.MarshalBool(nil, *t), nil
	case uint8:
		return fssz.MarshalUint8(nil, t), nil
	case *uint8:
		return fssz.MarshalUint8(nil, *t), nil
	case uint16:
		return fssz.MarshalUint16(nil, t), nil
	case *uint16:
		return fssz.MarshalUint16(nil, *t), nil
	case uint32:
		return fssz.MarshalUint32(nil, t), nil
	case *uint32:
		return fssz.MarshalUint32(nil, *t), nil
	case uint64:
		return fssz.MarshalUint64(nil, t), nil
	case *uint64:
		return fssz.MarshalUint64(nil, *t), nil
	case Uint128:
		return marshalUint128(t), nil
	case *Uint128:
		return marshalUint128(*t), nil
	case uint256.Int:
		return marshalUint256(&t), nil
	case *uint256.Int:
		return marshalUint256(t), nil
	case fssz.Marshaler:
		return t.MarshalSSZ()
	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "%T", v)
	}
}

// Unmarshal decodes buf into dst, which must be a pointer to a basic value or
// a fastssz container. The buffer must match the type's fixed size exactly.
func Unmarshal(buf []byte, dst interface{}) error {
	if u, ok := dst.(fssz.Unmarshaler); ok {
		return u.UnmarshalSSZ(buf)
	}
	size, err := SizeOf(dst)
	if err != nil {
		return err
	}
	if len(buf) != size {
		return errors.Wrapf(fssz.ErrSize, "%T: expected %d bytes, got %d", dst, size, len(buf))
	}
	switch t := dst.(type) {
	case *bool:
		if buf[0] > 1 {
			return errors.Errorf("invalid bool byte %#x", buf[0])
		}
		*t = fssz.UnmarshalBool(buf)
	case *uint8:
		*t = fssz.UnmarshallUint8(buf)
	case *uint16:
		*t = fssz.UnmarshallUint16(buf)
	case *uint32:
		*t = fssz.UnmarshallUint32(buf)
	case *uint64:
		*t = fssz.UnmarshallUint64(buf)
	case *Uint128:
		t.Lo = binary.LittleEndian.Uint64(buf[:8])
		t.Hi = binary.LittleEndian.Uint64(buf[8:])
	case *uint256.Int:
		for i := range t {
			t[i] = binary.LittleEndian.Uint64(buf[i*8 : (i+1)*8])
		}
	default:
		return errors.Wrapf(ErrUnsupportedType, "%T is not a pointer", dst)
	}
	return nil
}

func marshalUint128(v Uint128) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[:8], v.Lo)
	binary.LittleEndian.PutUint64(buf[8:], v.Hi)
	return buf
}

// uint256.Int keeps its limbs least significant first, which is already the
// little endian order ssz uses.
func marshalUint256(v *uint256.Int) []byte {
	buf := make([]byte, 32)
	for i, limb := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], limb)
	}
	return buf
}
