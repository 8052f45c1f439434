package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/Versifine/chatnbt/internal/nbt"
	"github.com/Versifine/chatnbt/internal/text"
)

// 辅助函数：写入 Anonymous NBT (TagString)
func writeStringNBT(buf *bytes.Buffer, s string) {
	buf.WriteByte(nbt.TagString)
	binary.Write(buf, binary.BigEndian, uint16(len(s)))
	buf.WriteString(s)
}

func buildPlayerChatPayload(
	globalIndex int32,
	sender uuid.UUID,
	plainMessage string,
	timestamp int64,
	unsignedContent string,
	filterType int32,
	networkName string,
	networkTargetName string,
) []byte {
	var buf bytes.Buffer

	WriteVarint(&buf, globalIndex)
	buf.Write(sender[:])
	WriteVarint(&buf, 0) // Index
	buf.WriteByte(0)     // 无消息签名
	WriteString(&buf, plainMessage)
	WriteInt64(&buf, timestamp)
	WriteInt64(&buf, 42) // Salt
	WriteVarint(&buf, 0) // PreviousMessages
	if unsignedContent != "" {
		buf.WriteByte(1)
		writeStringNBT(&buf, unsignedContent)
	} else {
		buf.WriteByte(0)
	}
	WriteVarint(&buf, filterType)
	if filterType == FilterPartiallyFiltered {
		WriteVarint(&buf, 1)
		WriteInt64(&buf, 0x0F)
	}
	WriteVarint(&buf, 1) // Type
	writeStringNBT(&buf, networkName)
	if networkTargetName != "" {
		buf.WriteByte(1)
		writeStringNBT(&buf, networkTargetName)
	} else {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func TestParsePlayerChat(t *testing.T) {
	sender := uuid.MustParse("01020304-0506-0708-090a-0b0c0d0e0f10")

	tests := []struct {
		name        string
		unsigned    string
		filterType  int32
		target      string
		wantMessage string
		wantMask    []int64
	}{
		{"普通消息", "", 0, "", "Hello World", nil},
		{"带未签名内容", "Hello (edited)", 0, "", "Hello (edited)", nil},
		{"部分过滤", "", FilterPartiallyFiltered, "", "Hello World", []int64{0x0F}},
		{"带目标名", "", 0, "Alex", "Hello World", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := buildPlayerChatPayload(1, sender, "Hello World", 1234567890, tt.unsigned, tt.filterType, "Steve", tt.target)
			chat, err := ParsePlayerChat(bytes.NewReader(payload))
			if err != nil {
				t.Fatalf("ParsePlayerChat() 返回错误: %v", err)
			}

			if chat.GlobalIndex != 1 {
				t.Errorf("GlobalIndex = %d, 期望 1", chat.GlobalIndex)
			}
			if chat.Sender != sender {
				t.Errorf("Sender = %v, 期望 %v", chat.Sender, sender)
			}
			if chat.PlainMessage != "Hello World" {
				t.Errorf("PlainMessage = %q, 期望 %q", chat.PlainMessage, "Hello World")
			}
			if chat.Timestamp != 1234567890 {
				t.Errorf("Timestamp = %d, 期望 1234567890", chat.Timestamp)
			}
			if !reflect.DeepEqual(chat.FilterTypeMask, tt.wantMask) {
				t.Errorf("FilterTypeMask = %v, 期望 %v", chat.FilterTypeMask, tt.wantMask)
			}

			comp, err := chat.Component(nil)
			if err != nil {
				t.Fatalf("Component() 返回错误: %v", err)
			}
			if txt, ok := comp.(*text.Text); !ok || txt.Content != tt.wantMessage {
				t.Errorf("Component() = %#v, 期望文本 %q", comp, tt.wantMessage)
			}

			name, err := chat.SenderComponent(nil)
			if err != nil {
				t.Fatalf("SenderComponent() 返回错误: %v", err)
			}
			if txt, ok := name.(*text.Text); !ok || txt.Content != "Steve" {
				t.Errorf("SenderComponent() = %#v, 期望 Steve", name)
			}

			target, err := chat.TargetComponent(nil)
			if err != nil {
				t.Fatalf("TargetComponent() 返回错误: %v", err)
			}
			if tt.target == "" {
				if target != nil {
					t.Errorf("TargetComponent() = %#v, 期望 nil", target)
				}
			} else if txt, ok := target.(*text.Text); !ok || txt.Content != tt.target {
				t.Errorf("TargetComponent() = %#v, 期望 %q", target, tt.target)
			}
		})
	}
}

func TestReadPreviousMessages(t *testing.T) {
	sig := make([]byte, SignatureSize)
	for i := range sig {
		sig[i] = byte(i)
	}

	var buf bytes.Buffer
	WriteVarint(&buf, 2)
	WriteVarint(&buf, 6) // 缓存 id 5
	WriteVarint(&buf, 0) // 完整签名
	buf.Write(sig)

	messages, err := ReadPreviousMessages(&buf)
	if err != nil {
		t.Fatalf("ReadPreviousMessages() 返回错误: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, 期望 2", len(messages))
	}
	if messages[0].ID != 5 || messages[0].Signature != nil {
		t.Errorf("messages[0] = %+v, 期望缓存 id 5", messages[0])
	}
	if messages[1].Signature == nil || !bytes.Equal(messages[1].Signature[:], sig) {
		t.Errorf("messages[1] 签名不一致")
	}

	t.Run("超过上限", func(t *testing.T) {
		var buf bytes.Buffer
		WriteVarint(&buf, MaxPreviousMessages+1)
		if _, err := ReadPreviousMessages(&buf); !errors.Is(err, ErrInvalidPacket) {
			t.Errorf("err = %v, 期望 ErrInvalidPacket", err)
		}
	})
}

func TestReadFilterTypeMask(t *testing.T) {
	var buf bytes.Buffer
	WriteVarint(&buf, 2)
	WriteInt64(&buf, 0x1234)
	WriteInt64(&buf, 0x5678)

	mask, err := ReadFilterTypeMask(&buf)
	if err != nil {
		t.Fatalf("ReadFilterTypeMask() 返回错误: %v", err)
	}
	if !reflect.DeepEqual(mask, []int64{0x1234, 0x5678}) {
		t.Errorf("mask = %v", mask)
	}

	t.Run("声明长度大于数据", func(t *testing.T) {
		var buf bytes.Buffer
		WriteVarint(&buf, 0x7fffffff)
		if _, err := ReadFilterTypeMask(&buf); err == nil {
			t.Error("应该返回错误")
		}
	})
}

func TestPlayerChatPacketRoundTrip(t *testing.T) {
	var sig [SignatureSize]byte
	sig[0] = 0xAB

	content := text.NewText("gg")
	gold := text.Gold
	content.Style.Color = &gold
	unsigned, err := text.Encode(content)
	if err != nil {
		t.Fatalf("Encode() 返回错误: %v", err)
	}
	senderName, err := text.Encode(text.NewText("Steve"))
	if err != nil {
		t.Fatalf("Encode() 返回错误: %v", err)
	}

	chat := &PlayerChat{
		GlobalIndex:      7,
		Sender:           uuid.MustParse("00000000-0000-0001-0000-000000000002"),
		Index:            3,
		Signature:        &sig,
		PlainMessage:     "gg",
		Timestamp:        1700000000000,
		Salt:             -5,
		PreviousMessages: []PreviousMessage{{ID: 4}, {ID: -1, Signature: &sig}},
		UnsignedContent:  unsigned,
		FilterType:       FilterPartiallyFiltered,
		FilterTypeMask:   []int64{1, 2},
		ChatType:         1,
		SenderName:       senderName,
	}

	pkt, err := CreatePlayerChatPacket(chat)
	if err != nil {
		t.Fatalf("CreatePlayerChatPacket() 返回错误: %v", err)
	}
	var buf bytes.Buffer
	if err := WritePacket(&buf, pkt, 0); err != nil {
		t.Fatalf("WritePacket() 返回错误: %v", err)
	}
	read, err := ReadPacket(&buf, 0)
	if err != nil {
		t.Fatalf("ReadPacket() 返回错误: %v", err)
	}
	got, err := PlayerChatFromPacket(read)
	if err != nil {
		t.Fatalf("PlayerChatFromPacket() 返回错误: %v", err)
	}

	if !nbt.Equal(got.UnsignedContent, chat.UnsignedContent) || !nbt.Equal(got.SenderName, chat.SenderName) {
		t.Errorf("文本标签不一致: %v / %v", got.UnsignedContent, got.SenderName)
	}
	got.UnsignedContent, got.SenderName = chat.UnsignedContent, chat.SenderName
	if !reflect.DeepEqual(got, chat) {
		t.Errorf("往返结果不一致:\n got  %+v\n want %+v", got, chat)
	}

	comp, err := got.Component(&text.Codec{})
	if err != nil {
		t.Fatalf("Component() 返回错误: %v", err)
	}
	if c := text.StyleOf(comp).Color; c == nil || *c != text.Gold {
		t.Errorf("Color = %v, 期望 gold", c)
	}
}

func TestPlayerChatErrors(t *testing.T) {
	t.Run("错误的包 ID", func(t *testing.T) {
		_, err := PlayerChatFromPacket(&Packet{ID: S2CSystemChatMessage})
		if !errors.Is(err, ErrUnexpectedID) {
			t.Errorf("err = %v, 期望 ErrUnexpectedID", err)
		}
	})
	t.Run("截断", func(t *testing.T) {
		payload := buildPlayerChatPayload(1, uuid.Nil, "hi", 0, "", 0, "Steve", "")
		_, err := ParsePlayerChat(bytes.NewReader(payload[:len(payload)-3]))
		if err == nil {
			t.Error("应该返回错误")
		}
	})
	t.Run("发送者名称无法解码", func(t *testing.T) {
		chat := &PlayerChat{PlainMessage: "hi", SenderName: nbt.Int(1)}
		if _, err := chat.SenderComponent(nil); !errors.Is(err, text.ErrUnsupportedFormat) {
			t.Errorf("err = %v, 期望 ErrUnsupportedFormat", err)
		}
	})
}
