package fountain

import "golang.org/x/exp/slices"

// unresolvedPacket is a packet whose neighbor set has not yet collapsed to
// a single block (spec §3's "Unresolved packet"). Packets are owned by the
// decoder's unresolved map and referred to from the block index only by
// their handle; there is no cyclic ownership.
type unresolvedPacket struct {
	neighbors map[int]struct{}
	data      []byte
}

// Decoder ingests LT packets for one session and reconstructs the padded
// source-block array via belief propagation. Like Encoder, a Decoder is not
// safe for concurrent use; distinct instances are independent.
type Decoder struct {
	initialized bool
	runID       uint32
	k           int
	blockSize   int
	origLen     uint32
	cdf         *solitonCDF

	blocks       [][]byte
	decoded      []bool
	decodedCount int

	unresolved map[int]*unresolvedPacket
	index      []map[int]struct{} // per block index, set of unresolved-packet handles
	nextHandle int
}

// NewDecoder constructs a decoder seeded with a hint (k, blockSize, runID).
// The hint is only used until the first packet arrives or until a packet
// declares a different run_id; from that point the session anchors come
// from the packet headers themselves (spec §6).
func NewDecoder(k, blockSize uint32, runID uint32) *Decoder {
	d := &Decoder{runID: runID, blockSize: int(blockSize)}
	if k == 0 {
		// k=0 is not a valid session hint (spec §3: "k ≥ 1"); leave the
		// decoder uninitialized rather than building a zero-block solitonCDF.
		// The first real packet's header establishes k via reset.
		return d
	}
	d.reset(runID, int(k), int(blockSize), 0)
	d.initialized = false
	return d
}

func (d *Decoder) reset(runID uint32, k, blockSize int, origLen uint32) {
	d.runID = runID
	d.k = k
	d.blockSize = blockSize
	d.origLen = origLen
	d.cdf = newSolitonCDF(k, DefaultC, DefaultDelta)
	d.blocks = make([][]byte, k)
	d.decoded = make([]bool, k)
	d.decodedCount = 0
	d.unresolved = make(map[int]*unresolvedPacket)
	d.index = make([]map[int]struct{}, k)
	for i := range d.index {
		d.index[i] = make(map[int]struct{})
	}
	d.nextHandle = 0
	d.initialized = true
}

// BlockCount returns k for the current session.
func (d *Decoder) BlockCount() uint32 { return uint32(d.k) }

// DecodedCount returns the number of blocks resolved so far.
func (d *Decoder) DecodedCount() uint32 { return uint32(d.decodedCount) }

// IsDone reports whether every block has been resolved.
func (d *Decoder) IsDone() bool { return d.initialized && d.decodedCount == d.k }

// Progress returns (decodedCount, k) as a convenience pair, mirrored from
// gofountain's progress-reporting style.
func (d *Decoder) Progress() (int, int) { return d.decodedCount, d.k }

// PendingBlocks returns a sorted snapshot of the block indices not yet
// decoded, for logging and inspection only.
func (d *Decoder) PendingBlocks() []int {
	pending := make([]int, 0, d.k-d.decodedCount)
	for i, done := range d.decoded {
		if !done {
			pending = append(pending, i)
		}
	}
	slices.Sort(pending)
	return pending
}

// PushPacket ingests one wire packet and returns true iff the session is
// now fully decoded. Malformed, redundant, and already-complete packets are
// dropped silently per spec §7 to preserve the rateless property.
func (d *Decoder) PushPacket(packet []byte) bool {
	hdr, err := ParseHeader(packet)
	if err != nil || hdr.K == 0 {
		return d.IsDone()
	}
	blockSize := len(packet) - HeaderSize

	if !d.initialized || hdr.RunID != d.runID {
		d.reset(hdr.RunID, int(hdr.K), blockSize, hdr.OrigLen)
	} else if blockSize != d.blockSize {
		// Packet's length contradicts the block size this session already
		// established (spec §3, §7's MalformedPacket) — drop it rather than
		// XOR a wrongly-sized residue into the block state.
		return d.decodedCount == d.k
	}

	if d.decodedCount == d.k {
		return true
	}

	p := newPRNG(hdr.RunID, hdr.SeqNum)
	degree := d.cdf.sample(p)
	neighbors := sampleNeighbors(p, degree, d.k)

	residue := make([]byte, d.blockSize)
	copy(residue, Payload(packet))

	remaining := make(map[int]struct{}, len(neighbors))
	for _, i := range neighbors {
		if d.decoded[i] {
			xorInto(residue, d.blocks[i])
			continue
		}
		remaining[i] = struct{}{}
	}

	switch len(remaining) {
	case 0:
		// Redundant: every neighbor was already decoded.
	case 1:
		var only int
		for i := range remaining {
			only = i
		}
		d.resolve(only, residue)
	default:
		handle := d.nextHandle
		d.nextHandle++
		d.unresolved[handle] = &unresolvedPacket{neighbors: remaining, data: residue}
		for i := range remaining {
			d.index[i][handle] = struct{}{}
		}
	}

	return d.decodedCount == d.k
}

// resolve runs belief propagation starting from a newly-known block value,
// as a work queue rather than recursion so that a long cascade over a large
// k does not grow the call stack (spec §4.5, §9).
func (d *Decoder) resolve(j int, data []byte) {
	type pending struct {
		block int
		data  []byte
	}
	queue := []pending{{j, data}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if d.decoded[cur.block] {
			continue
		}
		d.blocks[cur.block] = cur.data
		d.decoded[cur.block] = true
		d.decodedCount++

		affected := d.index[cur.block]
		d.index[cur.block] = make(map[int]struct{})

		for handle := range affected {
			p, ok := d.unresolved[handle]
			if !ok {
				continue
			}
			xorInto(p.data, cur.data)
			delete(p.neighbors, cur.block)

			switch len(p.neighbors) {
			case 0:
				delete(d.unresolved, handle)
			case 1:
				var j2 int
				for i := range p.neighbors {
					j2 = i
				}
				delete(d.index[j2], handle)
				delete(d.unresolved, handle)
				queue = append(queue, pending{j2, p.data})
			}
		}
	}
}

// GetResult returns the reconstructed payload truncated to origLen, or nil
// if the session is not yet fully decoded.
func (d *Decoder) GetResult(origLen uint32) []byte {
	if !d.initialized || d.decodedCount != d.k {
		return nil
	}
	out := make([]byte, 0, d.k*d.blockSize)
	for _, b := range d.blocks {
		out = append(out, b...)
	}
	if int(origLen) < len(out) {
		out = out[:origLen]
	}
	return out
}
