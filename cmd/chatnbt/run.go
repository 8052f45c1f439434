package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Versifine/chatnbt/internal/config"
	"github.com/Versifine/chatnbt/internal/nbt"
	"github.com/Versifine/chatnbt/internal/protocol"
	"github.com/Versifine/chatnbt/internal/text"
)

const (
	modeDecode    = "decode"
	modeNormalize = "normalize"
	modePackets   = "packets"
	modeWrap      = "wrap"
)

var errUnknownMode = errors.New("unknown mode")

type runner struct {
	codec     *text.Codec
	threshold int
	// sender 非空时 wrap 模式生成 Player Chat, 否则生成 System Chat
	sender    string
	actionBar bool
}

func newRunner(cfg *config.Config) *runner {
	return &runner{
		codec:     &text.Codec{MaxDepth: cfg.Codec.MaxDepth},
		threshold: cfg.Input.CompressionThreshold,
	}
}

func (r *runner) run(ctx context.Context, mode string, in io.Reader, out io.Writer) error {
	br := bufio.NewReader(in)
	switch mode {
	case modeDecode:
		return r.decode(br, out)
	case modeNormalize:
		return r.normalize(br, out)
	case modePackets:
		return r.packets(ctx, br, out)
	case modeWrap:
		return r.wrap(br, out)
	default:
		return fmt.Errorf("%w: %q", errUnknownMode, mode)
	}
}

// decode 读取一个匿名 NBT 标签并打印组件摘要与规范化后的标签
func (r *runner) decode(in io.Reader, out io.Writer) error {
	tag, err := nbt.ReadAnonymous(in)
	if err != nil {
		return err
	}
	comp, err := r.codec.Decode(tag)
	if err != nil {
		return err
	}
	slog.Info("Decoded component",
		"type", text.VariantName(comp),
		"children", len(text.ChildrenOf(comp)),
		"styled", !text.StyleOf(comp).IsEmpty())
	return r.describe(out, comp)
}

// normalize 将输入标签解码后再编码, 输出带显式 type 的规范形式
func (r *runner) normalize(in io.Reader, out io.Writer) error {
	tag, err := nbt.ReadAnonymous(in)
	if err != nil {
		return err
	}
	comp, err := r.codec.Decode(tag)
	if err != nil {
		return err
	}
	normalized, err := r.codec.Encode(comp)
	if err != nil {
		return err
	}
	return nbt.WriteAnonymous(out, normalized)
}

// packets 逐个读取数据包, 处理 System Chat 与 Player Chat, 单个坏包只记录不中断
func (r *runner) packets(ctx context.Context, in io.Reader, out io.Writer) error {
	var count, failed int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		pkt, err := protocol.ReadPacket(in, r.threshold)
		if err != nil {
			if errors.Is(err, io.EOF) {
				slog.Info("Packet stream finished", "messages", count, "failed", failed)
				return nil
			}
			return err
		}
		switch pkt.ID {
		case protocol.S2CSystemChatMessage:
			err = r.systemChat(pkt, out)
		case protocol.S2CPlayerChatMessage:
			err = r.playerChat(pkt, out)
		default:
			slog.Debug("Skipping packet", "id", fmt.Sprintf("0x%02x", pkt.ID), "len", len(pkt.Payload))
			continue
		}
		if errors.Is(err, errBadMessage) {
			failed++
			continue
		}
		if err != nil {
			return err
		}
		count++
	}
}

// errBadMessage marks a packet that was logged and skipped.
var errBadMessage = errors.New("bad chat message")

func (r *runner) systemChat(pkt *protocol.Packet, out io.Writer) error {
	chat, err := protocol.SystemChatFromPacket(pkt)
	if err != nil {
		slog.Warn("Bad system chat packet", "error", err)
		return errBadMessage
	}
	comp, err := chat.Component(r.codec)
	if err != nil {
		slog.Warn("Undecodable chat component", "content", chat.Content, "error", err)
		return errBadMessage
	}
	if chat.IsActionBar {
		fmt.Fprint(out, "[action bar] ")
	}
	return r.describe(out, comp)
}

func (r *runner) playerChat(pkt *protocol.Packet, out io.Writer) error {
	chat, err := protocol.PlayerChatFromPacket(pkt)
	if err != nil {
		slog.Warn("Bad player chat packet", "error", err)
		return errBadMessage
	}
	sender, err := chat.SenderComponent(r.codec)
	if err != nil {
		slog.Warn("Undecodable sender name", "sender", chat.Sender, "error", err)
		return errBadMessage
	}
	comp, err := chat.Component(r.codec)
	if err != nil {
		slog.Warn("Undecodable chat component", "sender", chat.Sender, "error", err)
		return errBadMessage
	}
	target, err := chat.TargetComponent(r.codec)
	if err != nil {
		slog.Warn("Undecodable target name", "sender", chat.Sender, "error", err)
		return errBadMessage
	}
	slog.Debug("Player chat",
		"sender", chat.Sender,
		"name", text.VariantName(sender),
		"targeted", target != nil,
		"signed", chat.Signature != nil)
	fmt.Fprint(out, "[player] ")
	if err := r.describe(out, sender); err != nil {
		return err
	}
	return r.describe(out, comp)
}

// wrap 把一个文本标签封装成聊天数据包帧, 用于构造回放用的数据包流
func (r *runner) wrap(in io.Reader, out io.Writer) error {
	tag, err := nbt.ReadAnonymous(in)
	if err != nil {
		return err
	}
	comp, err := r.codec.Decode(tag)
	if err != nil {
		return err
	}

	var pkt *protocol.Packet
	if r.sender == "" {
		chat, err := protocol.NewSystemChat(comp, r.actionBar)
		if err != nil {
			return err
		}
		if pkt, err = protocol.CreateSystemChatPacket(chat); err != nil {
			return err
		}
	} else {
		content, err := r.codec.Encode(comp)
		if err != nil {
			return err
		}
		name, err := r.codec.Encode(text.NewText(r.sender))
		if err != nil {
			return err
		}
		chat := &protocol.PlayerChat{
			Sender:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(r.sender)),
			UnsignedContent: content,
			SenderName:      name,
		}
		if plain, ok := comp.(*text.Text); ok {
			chat.PlainMessage = plain.Content
		}
		if pkt, err = protocol.CreatePlayerChatPacket(chat); err != nil {
			return err
		}
	}
	slog.Info("Wrapped component", "id", fmt.Sprintf("0x%02x", pkt.ID), "len", len(pkt.Payload))
	return protocol.WritePacket(out, pkt, r.threshold)
}

func (r *runner) describe(out io.Writer, comp text.Component) error {
	tag, err := r.codec.Encode(comp)
	if err != nil {
		return err
	}
	children := lo.Map(text.ChildrenOf(comp), func(c text.Component, _ int) string {
		return text.VariantName(c)
	})
	_, err = fmt.Fprintf(out, "%s [%s] %s\n", text.VariantName(comp), strings.Join(children, ","), tag)
	return err
}
