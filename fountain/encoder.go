package fountain

// Encoder produces an unbounded stream of self-describing LT packets for a
// fixed payload, one session (run_id) at a time. An Encoder is not safe for
// concurrent use by multiple goroutines; per spec §5 the host must not
// invoke two operations on the same instance concurrently.
type Encoder struct {
	data           []byte // padded source blocks, k*blockSize bytes
	k              int
	blockSize      int
	origLen        uint32
	runID          uint32
	seqNum         uint32
	cdf            *solitonCDF
	packetsEmitted uint64
}

// NewEncoder constructs an encoder over data, splitting it into blocks of
// blockSize bytes (padded with zeros to a multiple of blockSize) and
// tagging every packet it emits with runID.
func NewEncoder(data []byte, blockSize int, runID uint32) *Encoder {
	k := blockCount(len(data), blockSize)
	return &Encoder{
		data:      padded(data, blockSize),
		k:         k,
		blockSize: blockSize,
		origLen:   uint32(len(data)),
		runID:     runID,
		cdf:       newSolitonCDF(k, DefaultC, DefaultDelta),
	}
}

// BlockCount returns k, the number of source blocks.
func (e *Encoder) BlockCount() uint32 { return uint32(e.k) }

// BlockSize returns the configured block size in bytes.
func (e *Encoder) BlockSize() uint32 { return uint32(e.blockSize) }

// OriginalLen returns the unpadded payload length.
func (e *Encoder) OriginalLen() uint32 { return e.origLen }

// Stats returns the number of packets emitted so far in this session.
func (e *Encoder) Stats() uint64 { return e.packetsEmitted }

// NextPacket produces the next packet in the sequence: header plus the XOR
// of a Robust-Soliton-sampled subset of source blocks. It never fails given
// a validly constructed encoder (spec §4.4).
func (e *Encoder) NextPacket() []byte {
	seq := e.seqNum
	e.seqNum++
	e.packetsEmitted++

	p := newPRNG(e.runID, seq)
	degree := e.cdf.sample(p)
	neighbors := sampleNeighbors(p, degree, e.k)

	payload := make([]byte, e.blockSize)
	for _, idx := range neighbors {
		start := idx * e.blockSize
		xorInto(payload, e.data[start:start+e.blockSize])
	}

	return FramePacket(Header{
		RunID:   e.runID,
		K:       uint32(e.k),
		OrigLen: e.origLen,
		SeqNum:  seq,
	}, payload)
}
