package protocol

import (
	"bytes"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/Versifine/chatnbt/internal/nbt"
	"github.com/Versifine/chatnbt/internal/text"
)

const (
	SignatureSize       = 256
	MaxPreviousMessages = 20

	// FilterPartiallyFiltered is the only filter type followed by a mask.
	FilterPartiallyFiltered = 2
)

// PlayerChat is the clientbound Player Chat Message packet body. The three
// text fields are anonymous NBT tags; UnsignedContent and TargetName are nil
// when the packet omits them.
type PlayerChat struct {
	GlobalIndex      int32
	Sender           uuid.UUID
	Index            int32
	Signature        *[SignatureSize]byte
	PlainMessage     string
	Timestamp        int64
	Salt             int64
	PreviousMessages []PreviousMessage
	UnsignedContent  *nbt.Node
	FilterType       int32
	FilterTypeMask   []int64
	ChatType         int32
	SenderName       *nbt.Node
	TargetName       *nbt.Node
}

// PreviousMessage references an earlier message either by its cached id or
// by a full signature. Signature is set only when the id was not cached.
type PreviousMessage struct {
	ID        int32
	Signature *[SignatureSize]byte
}

func readSignature(r io.Reader) (*[SignatureSize]byte, error) {
	var signature [SignatureSize]byte
	if _, err := io.ReadFull(r, signature[:]); err != nil {
		return nil, err
	}
	return &signature, nil
}

// ReadPreviousMessages 读取最近消息的确认列表
// 线上的 id 为 0 表示紧跟完整签名, 否则为缓存 id + 1
func ReadPreviousMessages(r io.Reader) ([]PreviousMessage, error) {
	length, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if length < 0 || length > MaxPreviousMessages {
		return nil, fmt.Errorf("%w: %d previous messages", ErrInvalidPacket, length)
	}
	messages := make([]PreviousMessage, length)
	for i := range messages {
		id, err := ReadVarint(r)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			signature, err := readSignature(r)
			if err != nil {
				return nil, err
			}
			messages[i] = PreviousMessage{ID: -1, Signature: signature}
			continue
		}
		messages[i] = PreviousMessage{ID: id - 1}
	}
	return messages, nil
}

func writePreviousMessages(w io.Writer, messages []PreviousMessage) error {
	if len(messages) > MaxPreviousMessages {
		return fmt.Errorf("%w: %d previous messages", ErrInvalidPacket, len(messages))
	}
	if err := WriteVarint(w, int32(len(messages))); err != nil {
		return err
	}
	for _, m := range messages {
		if m.Signature != nil {
			if err := WriteVarint(w, 0); err != nil {
				return err
			}
			if _, err := w.Write(m.Signature[:]); err != nil {
				return err
			}
			continue
		}
		if err := WriteVarint(w, m.ID+1); err != nil {
			return err
		}
	}
	return nil
}

func ReadFilterTypeMask(r io.Reader) ([]int64, error) {
	length, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, ErrInvalidPacket
	}
	// 掩码长度来自数据包, 不按声明长度预分配
	mask := make([]int64, 0, min(length, 64))
	for i := int32(0); i < length; i++ {
		val, err := ReadInt64(r) // 协议规定是 i64，不是 VarLong
		if err != nil {
			return nil, err
		}
		mask = append(mask, val)
	}
	return mask, nil
}

func readOptionalTag(r io.Reader) (*nbt.Node, error) {
	present, err := ReadBool(r)
	if err != nil || !present {
		return nil, err
	}
	return nbt.ReadAnonymous(r)
}

func writeOptionalTag(w io.Writer, n *nbt.Node) error {
	if err := WriteBool(w, n != nil); err != nil {
		return err
	}
	if n == nil {
		return nil
	}
	return nbt.WriteAnonymous(w, n)
}

func ParsePlayerChat(r io.Reader) (*PlayerChat, error) {
	var chat PlayerChat
	var err error

	// Header
	if chat.GlobalIndex, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if chat.Sender, err = ReadUUID(r); err != nil {
		return nil, err
	}
	if chat.Index, err = ReadVarint(r); err != nil {
		return nil, err
	}
	hasSignature, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	if hasSignature {
		if chat.Signature, err = readSignature(r); err != nil {
			return nil, err
		}
	}

	// Body
	if chat.PlainMessage, err = ReadString(r); err != nil {
		return nil, err
	}
	if chat.Timestamp, err = ReadInt64(r); err != nil {
		return nil, err
	}
	if chat.Salt, err = ReadInt64(r); err != nil {
		return nil, err
	}
	if chat.PreviousMessages, err = ReadPreviousMessages(r); err != nil {
		return nil, err
	}

	// Other
	if chat.UnsignedContent, err = readOptionalTag(r); err != nil {
		return nil, err
	}
	if chat.FilterType, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if chat.FilterType == FilterPartiallyFiltered {
		if chat.FilterTypeMask, err = ReadFilterTypeMask(r); err != nil {
			return nil, err
		}
	}

	// Chat formatting
	if chat.ChatType, err = ReadVarint(r); err != nil {
		return nil, err
	}
	if chat.SenderName, err = nbt.ReadAnonymous(r); err != nil {
		return nil, err
	}
	if chat.TargetName, err = readOptionalTag(r); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (c *PlayerChat) Encode(w io.Writer) error {
	if err := WriteVarint(w, c.GlobalIndex); err != nil {
		return err
	}
	if err := WriteUUID(w, c.Sender); err != nil {
		return err
	}
	if err := WriteVarint(w, c.Index); err != nil {
		return err
	}
	if err := WriteBool(w, c.Signature != nil); err != nil {
		return err
	}
	if c.Signature != nil {
		if _, err := w.Write(c.Signature[:]); err != nil {
			return err
		}
	}
	if err := WriteString(w, c.PlainMessage); err != nil {
		return err
	}
	if err := WriteInt64(w, c.Timestamp); err != nil {
		return err
	}
	if err := WriteInt64(w, c.Salt); err != nil {
		return err
	}
	if err := writePreviousMessages(w, c.PreviousMessages); err != nil {
		return err
	}
	if err := writeOptionalTag(w, c.UnsignedContent); err != nil {
		return err
	}
	if err := WriteVarint(w, c.FilterType); err != nil {
		return err
	}
	if c.FilterType == FilterPartiallyFiltered {
		if err := WriteVarint(w, int32(len(c.FilterTypeMask))); err != nil {
			return err
		}
		for _, v := range c.FilterTypeMask {
			if err := WriteInt64(w, v); err != nil {
				return err
			}
		}
	}
	if err := WriteVarint(w, c.ChatType); err != nil {
		return err
	}
	if err := nbt.WriteAnonymous(w, c.SenderName); err != nil {
		return err
	}
	return writeOptionalTag(w, c.TargetName)
}

// Component is the message as the client shows it: the unsigned content
// when the server sent one, otherwise the signed plain text.
func (c *PlayerChat) Component(codec *text.Codec) (text.Component, error) {
	if c.UnsignedContent == nil {
		return text.NewText(c.PlainMessage), nil
	}
	return codec.Decode(c.UnsignedContent)
}

func (c *PlayerChat) SenderComponent(codec *text.Codec) (text.Component, error) {
	return codec.Decode(c.SenderName)
}

// TargetComponent returns nil without error when the packet has no target.
func (c *PlayerChat) TargetComponent(codec *text.Codec) (text.Component, error) {
	if c.TargetName == nil {
		return nil, nil
	}
	return codec.Decode(c.TargetName)
}

func CreatePlayerChatPacket(c *PlayerChat) (*Packet, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return nil, err
	}
	return &Packet{
		ID:      S2CPlayerChatMessage,
		Payload: buf.Bytes(),
	}, nil
}

// PlayerChatFromPacket parses p after checking its id.
func PlayerChatFromPacket(p *Packet) (*PlayerChat, error) {
	if p.ID != S2CPlayerChatMessage {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnexpectedID, p.ID)
	}
	return ParsePlayerChat(bytes.NewReader(p.Payload))
}
