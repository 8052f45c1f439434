package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteAnonymous writes n as a network NBT tag (type byte and payload, no
// root name). A nil node is written as TagEnd.
func WriteAnonymous(w io.Writer, n *Node) error {
	if n == nil || n.Type == TagEnd {
		return writeByte(w, TagEnd)
	}
	if err := writeByte(w, n.Type); err != nil {
		return err
	}
	return writePayload(w, n, 0)
}

func writePayload(w io.Writer, n *Node, depth int) error {
	switch n.Type {
	case TagByte:
		v, ok := n.Value.(byte)
		if !ok {
			return invalidValue(n)
		}
		return writeByte(w, v)
	case TagShort:
		v, ok := n.Value.(int16)
		if !ok {
			return invalidValue(n)
		}
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(v))
		_, err := w.Write(buf[:])
		return err
	case TagInt:
		v, ok := n.Value.(int32)
		if !ok {
			return invalidValue(n)
		}
		return writeInt32(w, v)
	case TagLong:
		v, ok := n.Value.(int64)
		if !ok {
			return invalidValue(n)
		}
		return writeInt64(w, v)
	case TagFloat:
		v, ok := n.Value.(float32)
		if !ok {
			return invalidValue(n)
		}
		return writeInt32(w, int32(math.Float32bits(v)))
	case TagDouble:
		v, ok := n.Value.(float64)
		if !ok {
			return invalidValue(n)
		}
		return writeInt64(w, int64(math.Float64bits(v)))
	case TagByteArray:
		v, ok := n.Value.([]byte)
		if !ok {
			return invalidValue(n)
		}
		if err := writeInt32(w, int32(len(v))); err != nil {
			return err
		}
		_, err := w.Write(v)
		return err
	case TagString:
		v, ok := n.Value.(string)
		if !ok {
			return invalidValue(n)
		}
		return writeString(w, v)
	case TagList:
		v, ok := n.Value.([]*Node)
		if !ok {
			return invalidValue(n)
		}
		if depth >= MaxDepth {
			return ErrDepthExceeded
		}
		return writeList(w, v, depth+1)
	case TagCompound:
		v, ok := n.Value.(*Compound)
		if !ok {
			return invalidValue(n)
		}
		if depth >= MaxDepth {
			return ErrDepthExceeded
		}
		return writeCompound(w, v, depth+1)
	case TagIntArray:
		v, ok := n.Value.([]int32)
		if !ok {
			return invalidValue(n)
		}
		if err := writeInt32(w, int32(len(v))); err != nil {
			return err
		}
		for _, x := range v {
			if err := writeInt32(w, x); err != nil {
				return err
			}
		}
		return nil
	case TagLongArray:
		v, ok := n.Value.([]int64)
		if !ok {
			return invalidValue(n)
		}
		if err := writeInt32(w, int32(len(v))); err != nil {
			return err
		}
		for _, x := range v {
			if err := writeInt64(w, x); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedTag, n.Type)
	}
}

func invalidValue(n *Node) error {
	return fmt.Errorf("%w: %s tag holds %T", ErrInvalidValue, TypeName(n.Type), n.Value)
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeInt32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

func writeInt64(w io.Writer, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return ErrStringTooLong
	}
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(len(s)))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeList(w io.Writer, items []*Node, depth int) error {
	var elementType byte = TagEnd
	if len(items) > 0 {
		elementType = items[0].Type
	}
	for _, item := range items {
		if item.Type != elementType {
			return fmt.Errorf("%w: %s and %s", ErrMixedList, TypeName(elementType), TypeName(item.Type))
		}
	}
	if err := writeByte(w, elementType); err != nil {
		return err
	}
	if err := writeInt32(w, int32(len(items))); err != nil {
		return err
	}
	for _, item := range items {
		if err := writePayload(w, item, depth); err != nil {
			return err
		}
	}
	return nil
}

func writeCompound(w io.Writer, c *Compound, depth int) error {
	var err error
	c.Each(func(key string, value *Node) bool {
		if value == nil || value.Type == TagEnd {
			err = fmt.Errorf("%w: end tag under key %q", ErrUnsupportedTag, key)
			return false
		}
		if err = writeByte(w, value.Type); err != nil {
			return false
		}
		if err = writeString(w, key); err != nil {
			return false
		}
		err = writePayload(w, value, depth)
		return err == nil
	})
	if err != nil {
		return err
	}
	return writeByte(w, TagEnd)
}
