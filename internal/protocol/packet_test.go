package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadPacket(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    *Packet
		wantErr bool
	}{
		{
			name: "正常数据包",
			input: []byte{
				0x06,                         // Length = 6
				0x01,                         // PacketID = 1
				0x48, 0x65, 0x6c, 0x6c, 0x6f, // "Hello"
			},
			want: &Packet{ID: 1, Payload: []byte("Hello")},
		},
		{
			name: "空Payload",
			input: []byte{
				0x01, // Length = 1
				0x00, // PacketID = 0
			},
			want: &Packet{ID: 0, Payload: []byte{}},
		},
		{
			name: "大PacketID",
			input: []byte{
				0x03,       // Length = 3
				0x80, 0x01, // PacketID = 128 (VarInt编码)
				0x01, // Payload = [0x01]
			},
			want: &Packet{ID: 128, Payload: []byte{0x01}},
		},
		{
			name:    "空数据",
			input:   []byte{},
			wantErr: true,
		},
		{
			name:    "只有Length不完整",
			input:   []byte{0x05},
			wantErr: true,
		},
		{
			name: "Length声明大于实际数据",
			input: []byte{
				0x10, // Length = 16
				0x01, // PacketID = 1
				0x48, // 只有1字节payload
			},
			wantErr: true,
		},
		{
			name:    "Length为0",
			input:   []byte{0x00},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadPacket(bytes.NewReader(tt.input), NoCompression)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadPacket() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.ID != tt.want.ID {
				t.Errorf("ReadPacket() ID = %v, want %v", got.ID, tt.want.ID)
			}
			if !bytes.Equal(got.Payload, tt.want.Payload) {
				t.Errorf("ReadPacket() Payload = %v, want %v", got.Payload, tt.want.Payload)
			}
		})
	}
}

func TestWritePacket(t *testing.T) {
	tests := []struct {
		name   string
		packet *Packet
		want   []byte
	}{
		{
			name:   "正常数据包",
			packet: &Packet{ID: 1, Payload: []byte("Hello")},
			want:   []byte{0x06, 0x01, 0x48, 0x65, 0x6c, 0x6c, 0x6f},
		},
		{
			name:   "空Payload",
			packet: &Packet{ID: 0, Payload: []byte{}},
			want:   []byte{0x01, 0x00},
		},
		{
			name:   "大PacketID",
			packet: &Packet{ID: 128, Payload: []byte{0x01}},
			want:   []byte{0x03, 0x80, 0x01, 0x01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WritePacket(&buf, tt.packet, NoCompression); err != nil {
				t.Fatalf("WritePacket() error = %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("WritePacket() = %v, want %v", buf.Bytes(), tt.want)
			}
		})
	}
}

func TestPacketCompressionRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		payload   []byte
	}{
		{"未压缩阈值下", 256, []byte("short")},
		{"压缩", 16, bytes.Repeat([]byte("chat "), 200)},
		{"阈值为0全部压缩", 0, []byte{0x01, 0x02}},
		{"不启用压缩", NoCompression, bytes.Repeat([]byte{0xAB}, 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := &Packet{ID: S2CSystemChatMessage, Payload: tt.payload}
			if err := WritePacket(&buf, p, tt.threshold); err != nil {
				t.Fatalf("WritePacket() 返回错误: %v", err)
			}
			got, err := ReadPacket(&buf, tt.threshold)
			if err != nil {
				t.Fatalf("ReadPacket() 返回错误: %v", err)
			}
			if got.ID != p.ID || !bytes.Equal(got.Payload, p.Payload) {
				t.Errorf("往返结果不一致: got ID=%d len=%d", got.ID, len(got.Payload))
			}
		})
	}
}

func TestReadPacketCompressedTooLarge(t *testing.T) {
	var frame bytes.Buffer
	WriteVarint(&frame, MaxPacketSize+1) // Data Length
	frame.WriteByte(0x00)

	var buf bytes.Buffer
	WriteVarint(&buf, int32(frame.Len()))
	buf.Write(frame.Bytes())

	_, err := ReadPacket(&buf, 0)
	if !errors.Is(err, ErrPacketTooLarge) {
		t.Errorf("err = %v, 期望 ErrPacketTooLarge", err)
	}
}
