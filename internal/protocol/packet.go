package protocol

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"
)

// MaxPacketSize is the largest frame accepted from a captured stream, and
// the largest decompressed body.
const MaxPacketSize = 2097152 // 2MB

// NoCompression disables the Data Length field in framing.
const NoCompression = -1

// Packet is one clientbound play packet taken from a captured chat stream.
// Payload holds the body after the packet id, e.g. a System Chat content tag
// and overlay flag.
type Packet struct {
	ID      int32
	Payload []byte
}

// ReadPacket reads the next frame of a captured stream. threshold is the
// compression threshold the connection negotiated; NoCompression reads the
// plain [Length][ID][Payload] layout. io.EOF is returned unwrapped when the
// stream ends between frames.
func ReadPacket(r io.Reader, threshold int) (*Packet, error) {
	// 1. Read Packet Length
	packetLen, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}

	if packetLen <= 0 {
		return nil, ErrInvalidPacket
	}
	if packetLen > MaxPacketSize {
		return nil, ErrPacketTooLarge
	}

	// 2. Read entire packet data
	data := make([]byte, packetLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Join(ErrInvalidPacket, err)
	}

	var rawDataReader io.Reader = bytes.NewReader(data)

	// 3. Handle Compression
	if threshold >= 0 {
		dataLen, err := ReadVarint(rawDataReader)
		if err != nil {
			return nil, err
		}
		if dataLen < 0 {
			return nil, ErrInvalidPacket
		}
		if dataLen > MaxPacketSize {
			return nil, ErrPacketTooLarge
		}

		if dataLen != 0 {
			z, err := zlib.NewReader(rawDataReader)
			if err != nil {
				return nil, errors.Join(ErrInvalidPacket, err)
			}
			defer z.Close()

			decompressed := make([]byte, dataLen)
			if _, err := io.ReadFull(z, decompressed); err != nil {
				return nil, errors.Join(ErrInvalidPacket, err)
			}
			rawDataReader = bytes.NewReader(decompressed)
		}
		// dataLen == 0: the rest is an uncompressed [ID] [Payload]
	}

	// 4. Parse ID and Payload
	id, err := ReadVarint(rawDataReader)
	if err != nil {
		return nil, errors.Join(ErrInvalidPacket, err)
	}
	payload, _ := io.ReadAll(rawDataReader)
	return &Packet{
		ID:      id,
		Payload: payload,
	}, nil
}

// WritePacket frames packet the way ReadPacket expects it, compressing bodies
// of at least threshold bytes. It is used to build chat streams for replay.
func WritePacket(w io.Writer, packet *Packet, threshold int) error {
	// 1. Prepare raw [ID] [Payload]
	idBuf := bytes.NewBuffer(make([]byte, 0, VarIntLen(packet.ID)))
	if err := WriteVarint(idBuf, packet.ID); err != nil {
		return err
	}

	uncompressedLen := idBuf.Len() + len(packet.Payload)
	if uncompressedLen > MaxPacketSize {
		return ErrPacketTooLarge
	}

	var packetData []byte
	var dataLength int32 = 0 // 0 means uncompressed

	if threshold >= 0 && uncompressedLen >= threshold {
		var buf bytes.Buffer
		z := zlib.NewWriter(&buf)
		if _, err := z.Write(idBuf.Bytes()); err != nil {
			return err
		}
		if _, err := z.Write(packet.Payload); err != nil {
			return err
		}
		if err := z.Close(); err != nil {
			return err
		}
		packetData = buf.Bytes()
		dataLength = int32(uncompressedLen)
	} else {
		packetData = append(idBuf.Bytes(), packet.Payload...)
	}

	// 2. Write Packet Header + Data
	if threshold >= 0 {
		// Format: [Packet Length] [Data Length] [Data]
		dataLenBuf := bytes.NewBuffer(make([]byte, 0, VarIntLen(dataLength)))
		if err := WriteVarint(dataLenBuf, dataLength); err != nil {
			return err
		}

		totalLen := dataLenBuf.Len() + len(packetData)
		if err := WriteVarint(w, int32(totalLen)); err != nil {
			return err
		}
		if _, err := w.Write(dataLenBuf.Bytes()); err != nil {
			return err
		}
		if _, err := w.Write(packetData); err != nil {
			return err
		}
	} else {
		// Format: [Length] [ID] [Payload]
		if err := WriteVarint(w, int32(len(packetData))); err != nil {
			return err
		}
		if _, err := w.Write(packetData); err != nil {
			return err
		}
	}

	return nil
}
