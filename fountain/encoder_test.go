package fountain

import "testing"

// TestEncoderScenarioS1 is scenario S1 from the spec: a 12-byte payload
// with block_size=50 fits in a single block, so every packet has degree 1
// and a decoder completes on the very first one.
func TestEncoderScenarioS1(t *testing.T) {
	enc := NewEncoder([]byte("Hello, QRAM!"), 50, 42)
	if enc.BlockCount() != 1 {
		t.Fatalf("BlockCount() = %d, want 1", enc.BlockCount())
	}

	dec := NewDecoder(enc.BlockCount(), enc.BlockSize(), 42)
	packet := enc.NextPacket()
	if !dec.PushPacket(packet) {
		t.Fatalf("decoder did not complete on the first packet of a k=1 session")
	}
	if got := dec.GetResult(enc.OriginalLen()); string(got) != "Hello, QRAM!" {
		t.Fatalf("GetResult() = %q, want %q", got, "Hello, QRAM!")
	}
}

func TestEncoderPacketShape(t *testing.T) {
	enc := NewEncoder(make([]byte, 1000), 200, 0xDEADBEEF)
	for i := 0; i < 20; i++ {
		packet := enc.NextPacket()
		if len(packet) != HeaderSize+200 {
			t.Fatalf("packet %d length = %d, want %d", i, len(packet), HeaderSize+200)
		}
		hdr, err := ParseHeader(packet)
		if err != nil {
			t.Fatalf("packet %d: ParseHeader error: %v", i, err)
		}
		if hdr.RunID != 0xDEADBEEF || hdr.K != 5 || hdr.OrigLen != 1000 || hdr.SeqNum != uint32(i) {
			t.Fatalf("packet %d header = %+v, want run_id=0xDEADBEEF k=5 orig_len=1000 seq_num=%d", i, hdr, i)
		}
	}
}

func TestEncoderStatsTracksEmissions(t *testing.T) {
	enc := NewEncoder(make([]byte, 100), 20, 1)
	for i := 0; i < 7; i++ {
		enc.NextPacket()
	}
	if enc.Stats() != 7 {
		t.Fatalf("Stats() = %d, want 7", enc.Stats())
	}
}
