package fountain

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the fixed size in bytes of the packet header (spec §3).
const HeaderSize = 16

// ErrMalformedPacket is returned by ParseHeader when a byte slice is too
// short to contain a header, or declares a zero-length payload. Per spec
// §7, a decoder never surfaces this to its caller as a hard failure: it
// drops the packet and waits for the next one.
var ErrMalformedPacket = errors.New("fountain: malformed packet")

// Header is the fixed 16-byte prefix of every wire packet.
type Header struct {
	RunID   uint32
	K       uint32
	OrigLen uint32
	SeqNum  uint32
}

// Pack serializes the header into the first 16 bytes of dst, which must be
// at least HeaderSize long.
func (h Header) Pack(dst []byte) {
	binary.BigEndian.PutUint32(dst[0:4], h.RunID)
	binary.BigEndian.PutUint32(dst[4:8], h.K)
	binary.BigEndian.PutUint32(dst[8:12], h.OrigLen)
	binary.BigEndian.PutUint32(dst[12:16], h.SeqNum)
}

// ParseHeader reads the header from the front of a wire packet. It returns
// ErrMalformedPacket if the packet is shorter than HeaderSize or carries an
// empty payload (block_size < 1).
func ParseHeader(packet []byte) (Header, error) {
	if len(packet) < HeaderSize+1 {
		return Header{}, ErrMalformedPacket
	}
	return Header{
		RunID:   binary.BigEndian.Uint32(packet[0:4]),
		K:       binary.BigEndian.Uint32(packet[4:8]),
		OrigLen: binary.BigEndian.Uint32(packet[8:12]),
		SeqNum:  binary.BigEndian.Uint32(packet[12:16]),
	}, nil
}

// Payload returns the slice of packet following the header.
func Payload(packet []byte) []byte {
	return packet[HeaderSize:]
}

// FramePacket allocates a full wire packet: header followed by payload.
func FramePacket(h Header, payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	h.Pack(out)
	copy(out[HeaderSize:], payload)
	return out
}
