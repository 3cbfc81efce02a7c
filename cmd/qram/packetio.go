package main

import (
	"bufio"
	"encoding/binary"
	"io"
)

// writePacket writes one length-prefixed packet to w: a u32 BE length
// followed by the packet bytes. This on-disk framing exists only so the
// CLI can stash a packet stream in an ordinary file; it has no bearing on
// the optical-channel wire format of spec.md §3, which carries no length
// prefix because the symbology layer delivers each packet's bytes intact.
func writePacket(w io.Writer, packet []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(packet)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(packet)
	return err
}

// readPacket reads one length-prefixed packet, returning io.EOF when the
// stream is exhausted.
func readPacket(r *bufio.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	packet := make([]byte, n)
	if _, err := io.ReadFull(r, packet); err != nil {
		return nil, err
	}
	return packet, nil
}
