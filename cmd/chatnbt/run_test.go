package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Versifine/chatnbt/internal/config"
	"github.com/Versifine/chatnbt/internal/nbt"
	"github.com/Versifine/chatnbt/internal/protocol"
	"github.com/Versifine/chatnbt/internal/text"
)

func anonymous(t *testing.T, n *nbt.Node) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := nbt.WriteAnonymous(&buf, n); err != nil {
		t.Fatalf("WriteAnonymous() 返回错误: %v", err)
	}
	return &buf
}

func TestRunDecode(t *testing.T) {
	tag := nbt.CompoundNode(nbt.NewCompound().
		PutString("text", "hi").
		PutList("extra", nbt.String("there")))

	var out bytes.Buffer
	r := newRunner(config.Default())
	if err := r.run(context.Background(), modeDecode, anonymous(t, tag), &out); err != nil {
		t.Fatalf("run() 返回错误: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "text [text] ") {
		t.Errorf("输出 = %q, 期望以 %q 开头", got, "text [text] ")
	}
	if !strings.Contains(got, `String("hi")`) {
		t.Errorf("输出应包含内容, 实际: %q", got)
	}
}

func TestRunNormalize(t *testing.T) {
	// 省略 type 的组件应补全为带 type 的规范形式
	tag := nbt.CompoundNode(nbt.NewCompound().
		PutString("translate", "chat.type.text").
		PutString("color", "#FF5555"))

	var out bytes.Buffer
	r := newRunner(config.Default())
	if err := r.run(context.Background(), modeNormalize, anonymous(t, tag), &out); err != nil {
		t.Fatalf("run() 返回错误: %v", err)
	}

	got, err := nbt.ReadAnonymous(&out)
	if err != nil {
		t.Fatalf("ReadAnonymous() 返回错误: %v", err)
	}
	want := nbt.CompoundNode(nbt.NewCompound().
		PutString("type", "translatable").
		PutString("translate", "chat.type.text").
		PutString("color", "red"))
	if !nbt.Equal(got, want) {
		t.Errorf("规范化结果 = %v, 期望 %v", got, want)
	}
}

func TestRunPackets(t *testing.T) {
	cfg := config.Default()
	cfg.Input.CompressionThreshold = 0

	var stream bytes.Buffer
	write := func(p *protocol.Packet) {
		if err := protocol.WritePacket(&stream, p, cfg.Input.CompressionThreshold); err != nil {
			t.Fatalf("WritePacket() 返回错误: %v", err)
		}
	}

	chat, err := protocol.NewSystemChat(text.NewText("welcome"), true)
	if err != nil {
		t.Fatalf("NewSystemChat() 返回错误: %v", err)
	}
	good, err := protocol.CreateSystemChatPacket(chat)
	if err != nil {
		t.Fatalf("CreateSystemChatPacket() 返回错误: %v", err)
	}
	write(&protocol.Packet{ID: 0x26, Payload: []byte{0x01}})
	write(good)
	// 内容是 int 标签, 无法解码为组件
	bad, err := protocol.CreateSystemChatPacket(&protocol.SystemChat{Content: nbt.Int(3)})
	if err != nil {
		t.Fatalf("CreateSystemChatPacket() 返回错误: %v", err)
	}
	write(bad)

	senderName, err := text.Encode(text.NewText("Steve"))
	if err != nil {
		t.Fatalf("Encode() 返回错误: %v", err)
	}
	player, err := protocol.CreatePlayerChatPacket(&protocol.PlayerChat{
		PlainMessage: "gg",
		SenderName:   senderName,
	})
	if err != nil {
		t.Fatalf("CreatePlayerChatPacket() 返回错误: %v", err)
	}
	write(player)
	// 发送者名称是 int 标签
	badPlayer, err := protocol.CreatePlayerChatPacket(&protocol.PlayerChat{SenderName: nbt.Int(3)})
	if err != nil {
		t.Fatalf("CreatePlayerChatPacket() 返回错误: %v", err)
	}
	write(badPlayer)

	var out bytes.Buffer
	if err := newRunner(cfg).run(context.Background(), modePackets, &stream, &out); err != nil {
		t.Fatalf("run() 返回错误: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("输出行数 = %d, 期望 3: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "[action bar] text") || !strings.Contains(lines[0], "welcome") {
		t.Errorf("输出 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[player] text") || !strings.Contains(lines[1], "Steve") {
		t.Errorf("发送者行 = %q", lines[1])
	}
	if !strings.Contains(lines[2], `String("gg")`) {
		t.Errorf("内容行 = %q", lines[2])
	}
}

func TestRunWrap(t *testing.T) {
	tag := nbt.CompoundNode(nbt.NewCompound().
		PutString("text", "restart").
		PutBool("bold", true))

	tests := []struct {
		name      string
		sender    string
		actionBar bool
		wantID    int32
	}{
		{"系统消息", "", false, protocol.S2CSystemChatMessage},
		{"动作栏", "", true, protocol.S2CSystemChatMessage},
		{"玩家消息", "Steve", false, protocol.S2CPlayerChatMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Input.CompressionThreshold = 0
			r := newRunner(cfg)
			r.sender = tt.sender
			r.actionBar = tt.actionBar

			var frame bytes.Buffer
			if err := r.run(context.Background(), modeWrap, anonymous(t, tag), &frame); err != nil {
				t.Fatalf("run() 返回错误: %v", err)
			}
			pkt, err := protocol.ReadPacket(&frame, cfg.Input.CompressionThreshold)
			if err != nil {
				t.Fatalf("ReadPacket() 返回错误: %v", err)
			}
			if pkt.ID != tt.wantID {
				t.Fatalf("ID = 0x%02x, 期望 0x%02x", pkt.ID, tt.wantID)
			}

			var comp text.Component
			if tt.sender == "" {
				chat, err := protocol.SystemChatFromPacket(pkt)
				if err != nil {
					t.Fatalf("SystemChatFromPacket() 返回错误: %v", err)
				}
				if chat.IsActionBar != tt.actionBar {
					t.Errorf("IsActionBar = %v, 期望 %v", chat.IsActionBar, tt.actionBar)
				}
				comp, err = chat.Component(nil)
				if err != nil {
					t.Fatalf("Component() 返回错误: %v", err)
				}
			} else {
				chat, err := protocol.PlayerChatFromPacket(pkt)
				if err != nil {
					t.Fatalf("PlayerChatFromPacket() 返回错误: %v", err)
				}
				if chat.PlainMessage != "restart" {
					t.Errorf("PlainMessage = %q, 期望 restart", chat.PlainMessage)
				}
				name, err := chat.SenderComponent(nil)
				if err != nil {
					t.Fatalf("SenderComponent() 返回错误: %v", err)
				}
				if txt, ok := name.(*text.Text); !ok || txt.Content != tt.sender {
					t.Errorf("SenderComponent() = %#v, 期望 %q", name, tt.sender)
				}
				comp, err = chat.Component(nil)
				if err != nil {
					t.Fatalf("Component() 返回错误: %v", err)
				}
			}
			if txt, ok := comp.(*text.Text); !ok || txt.Content != "restart" || txt.Style.Bold != text.True {
				t.Errorf("组件 = %#v, 期望加粗文本 restart", comp)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	r := newRunner(config.Default())

	t.Run("未知模式", func(t *testing.T) {
		err := r.run(context.Background(), "render", bytes.NewReader(nil), &bytes.Buffer{})
		if !errors.Is(err, errUnknownMode) {
			t.Errorf("err = %v, 期望 errUnknownMode", err)
		}
	})

	t.Run("不支持的标签", func(t *testing.T) {
		err := r.run(context.Background(), modeDecode, anonymous(t, nbt.Int(1)), &bytes.Buffer{})
		if !errors.Is(err, text.ErrUnsupportedFormat) {
			t.Errorf("err = %v, 期望 ErrUnsupportedFormat", err)
		}
	})

	t.Run("嵌套超限", func(t *testing.T) {
		cfg := config.Default()
		cfg.Codec.MaxDepth = 2
		tag := nbt.CompoundNode(nbt.NewCompound().
			PutString("text", "a").
			PutList("extra", nbt.CompoundNode(nbt.NewCompound().
				PutString("text", "b").
				PutList("extra", nbt.String("c")))))
		err := newRunner(cfg).run(context.Background(), modeDecode, anonymous(t, tag), &bytes.Buffer{})
		if !errors.Is(err, text.ErrDepthExceeded) {
			t.Errorf("err = %v, 期望 ErrDepthExceeded", err)
		}
	})

	t.Run("已取消", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := r.run(ctx, modePackets, bytes.NewReader(nil), &bytes.Buffer{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, 期望 context.Canceled", err)
		}
	})
}
