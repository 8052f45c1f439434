package protocol

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Versifine/chatnbt/internal/nbt"
	"github.com/Versifine/chatnbt/internal/text"
)

// SystemChat is the clientbound System Chat Message packet body.
type SystemChat struct {
	Content     *nbt.Node
	IsActionBar bool
}

func ParseSystemChat(r io.Reader) (*SystemChat, error) {
	var chat SystemChat
	content, err := nbt.ReadAnonymous(r)
	if err != nil {
		return nil, err
	}
	chat.Content = content

	isActionBar, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	chat.IsActionBar = isActionBar
	return &chat, nil
}

// NewSystemChat encodes comp as the packet content.
func NewSystemChat(comp text.Component, isActionBar bool) (*SystemChat, error) {
	content, err := text.Encode(comp)
	if err != nil {
		return nil, err
	}
	return &SystemChat{Content: content, IsActionBar: isActionBar}, nil
}

// Component decodes the content tag with codec, or the default codec when
// codec is nil.
func (c *SystemChat) Component(codec *text.Codec) (text.Component, error) {
	if codec == nil {
		return text.Decode(c.Content)
	}
	return codec.Decode(c.Content)
}

func (c *SystemChat) Encode(w io.Writer) error {
	if err := nbt.WriteAnonymous(w, c.Content); err != nil {
		return err
	}
	return WriteBool(w, c.IsActionBar)
}

func CreateSystemChatPacket(c *SystemChat) (*Packet, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return nil, err
	}
	return &Packet{
		ID:      S2CSystemChatMessage,
		Payload: buf.Bytes(),
	}, nil
}

// SystemChatFromPacket parses p after checking its id.
func SystemChatFromPacket(p *Packet) (*SystemChat, error) {
	if p.ID != S2CSystemChatMessage {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnexpectedID, p.ID)
	}
	chat, err := ParseSystemChat(bytes.NewReader(p.Payload))
	if err != nil {
		return nil, err
	}
	return chat, nil
}
