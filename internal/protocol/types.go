// Package protocol 负责承载文本组件的 Minecraft 数据包编解码
package protocol

import (
	"encoding/binary"
	"io"

	"github.com/google/uuid"
)

const (
	SEGMENT_BITS = 0x7F
	CONTINUE_BIT = 0x80
)

func ReadVarint(r io.Reader) (value int32, err error) {
	value = 0
	position := 0
	currentByte := make([]byte, 1)
	for {
		_, err = io.ReadFull(r, currentByte)
		if err != nil {
			return
		}
		b := currentByte[0]
		value |= int32(b&SEGMENT_BITS) << position
		if (b & CONTINUE_BIT) == 0 {
			break
		}
		position += 7
		if position >= 32 {
			err = ErrVarIntTooLong
			return
		}
	}
	return
}

func WriteVarint(w io.Writer, value int32) (err error) {
	uvalue := uint32(value)
	for {
		temp := byte(uvalue & SEGMENT_BITS)
		uvalue >>= 7
		if uvalue != 0 {
			temp |= CONTINUE_BIT
		}
		_, err = w.Write([]byte{temp})
		if err != nil {
			return
		}
		if uvalue == 0 {
			break
		}
	}
	return
}

// VarIntLen 返回 VarInt 编码后的字节长度
func VarIntLen(value int32) int {
	uvalue := uint32(value)
	count := 0
	for {
		count++
		uvalue >>= 7
		if uvalue == 0 {
			break
		}
	}
	return count
}

func ReadString(r io.Reader) (string, error) {
	length, err := ReadVarint(r)
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", ErrInvalidPacket
	}
	if length > MaxPacketSize {
		return "", ErrPacketTooLarge
	}
	strBytes := make([]byte, length)
	_, err = io.ReadFull(r, strBytes)
	if err != nil {
		return "", err
	}
	return string(strBytes), nil
}

func WriteString(w io.Writer, s string) error {
	err := WriteVarint(w, int32(len(s)))
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(s))
	return err
}

func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}

func WriteBool(w io.Writer, value bool) error {
	var b byte
	if value {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

func ReadInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func WriteInt64(w io.Writer, value int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	_, err := w.Write(buf[:])
	return err
}

// ReadUUID reads the 16 raw bytes of a UUID, most significant first.
func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var id uuid.UUID
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func WriteUUID(w io.Writer, id uuid.UUID) error {
	_, err := w.Write(id[:])
	return err
}
