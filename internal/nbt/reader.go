package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// MaxDepth bounds list/compound nesting while reading and writing.
const MaxDepth = 512

// maxPrealloc caps the capacity taken from a declared length. Longer
// arrays and lists grow while their elements are read, so a forged length
// fails with io.ErrUnexpectedEOF instead of allocating up front.
const maxPrealloc = 1024

// ReadAnonymous reads a network NBT tag: a type byte followed by the
// payload, without a root name.
func ReadAnonymous(r io.Reader) (*Node, error) {
	typeByte, err := readByte(r)
	if err != nil {
		return nil, err
	}
	if typeByte == TagEnd {
		return &Node{Type: TagEnd, Value: nil}, nil
	}
	return readPayload(r, typeByte, 0)
}

func readPayload(r io.Reader, typeByte byte, depth int) (*Node, error) {
	switch typeByte {
	case TagByte:
		b, err := readByte(r)
		if err != nil {
			return nil, err
		}
		return Byte(b), nil
	case TagShort:
		s, err := readInt16(r)
		if err != nil {
			return nil, err
		}
		return Short(s), nil
	case TagInt:
		i, err := readInt32(r)
		if err != nil {
			return nil, err
		}
		return Int(i), nil
	case TagLong:
		l, err := readInt64(r)
		if err != nil {
			return nil, err
		}
		return Long(l), nil
	case TagFloat:
		f, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	case TagDouble:
		d, err := readFloat64(r)
		if err != nil {
			return nil, err
		}
		return Double(d), nil
	case TagByteArray:
		arr, err := readByteArray(r)
		if err != nil {
			return nil, err
		}
		return ByteArray(arr), nil
	case TagString:
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TagList:
		if depth >= MaxDepth {
			return nil, ErrDepthExceeded
		}
		list, err := readList(r, depth+1)
		if err != nil {
			return nil, err
		}
		return List(list...), nil
	case TagCompound:
		if depth >= MaxDepth {
			return nil, ErrDepthExceeded
		}
		compound, err := readCompound(r, depth+1)
		if err != nil {
			return nil, err
		}
		return CompoundNode(compound), nil
	case TagIntArray:
		arr, err := readIntArray(r)
		if err != nil {
			return nil, err
		}
		return IntArray(arr), nil
	case TagLongArray:
		arr, err := readLongArray(r)
		if err != nil {
			return nil, err
		}
		return LongArray(arr), nil
	default:
		slog.Warn("unsupported NBT tag type", "type", typeByte)
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTag, typeByte)
	}
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func readInt16(r io.Reader) (int16, error) {
	var buf [2]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

func readInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func readInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func readFloat32(r io.Reader) (float32, error) {
	bits, err := readInt32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(bits)), nil
}

func readFloat64(r io.Reader) (float64, error) {
	bits, err := readInt64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(bits)), nil
}

func readLength(r io.Reader) (int32, error) {
	length, err := readInt32(r)
	if err != nil {
		return 0, err
	}
	if length < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}
	return length, nil
}

func readByteArray(r io.Reader) ([]byte, error) {
	length, err := readLength(r)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(length)))
	if err != nil {
		return nil, err
	}
	if len(data) < int(length) {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

func readString(r io.Reader) (string, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", err
	}
	strBytes := make([]byte, binary.BigEndian.Uint16(lenBuf[:]))
	if _, err := io.ReadFull(r, strBytes); err != nil {
		return "", err
	}
	return string(strBytes), nil
}

func readIntArray(r io.Reader) ([]int32, error) {
	length, err := readLength(r)
	if err != nil {
		return nil, err
	}
	data := make([]int32, 0, min(length, maxPrealloc))
	for i := int32(0); i < length; i++ {
		val, err := readInt32(r)
		if err != nil {
			return nil, err
		}
		data = append(data, val)
	}
	return data, nil
}

func readLongArray(r io.Reader) ([]int64, error) {
	length, err := readLength(r)
	if err != nil {
		return nil, err
	}
	data := make([]int64, 0, min(length, maxPrealloc))
	for i := int32(0); i < length; i++ {
		val, err := readInt64(r)
		if err != nil {
			return nil, err
		}
		data = append(data, val)
	}
	return data, nil
}

func readList(r io.Reader, depth int) ([]*Node, error) {
	elementType, err := readByte(r)
	if err != nil {
		return nil, err
	}
	length, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	// 空列表可能带 TagEnd 元素类型, 长度也可能为负
	if length <= 0 {
		return []*Node{}, nil
	}
	if elementType == TagEnd {
		return nil, fmt.Errorf("%w: list of end tags with length %d", ErrUnsupportedTag, length)
	}
	list := make([]*Node, 0, min(length, maxPrealloc))
	for i := int32(0); i < length; i++ {
		element, err := readPayload(r, elementType, depth)
		if err != nil {
			return nil, err
		}
		list = append(list, element)
	}
	return list, nil
}

func readCompound(r io.Reader, depth int) (*Compound, error) {
	compound := NewCompound()
	for {
		typeByte, err := readByte(r)
		if err != nil {
			return nil, err
		}
		if typeByte == TagEnd {
			break
		}
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		payload, err := readPayload(r, typeByte, depth)
		if err != nil {
			return nil, err
		}
		compound.Put(name, payload)
	}
	return compound, nil
}
