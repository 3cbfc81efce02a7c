package envelope

import (
	"encoding/binary"

	log "github.com/sirupsen/logrus"
)

// compressionMagic is the 5-byte marker at the front of a compression
// envelope (spec §3). compressionHeaderSize is magic + algo byte + the
// u32 BE original length.
const (
	compressionMagic      = "QRAMC"
	compressionHeaderSize = len(compressionMagic) + 1 + 4

	// minCandidateLen below this length, skip compression outright (spec
	// §4.6 step 1): the envelope overhead dominates for tiny payloads.
	minCandidateLen = 50

	// maxEnvelopeRatio and minSavedBytes are the two conditions that must
	// both hold for a compressed envelope to be worth keeping (spec §4.6
	// step 4).
	maxEnvelopeRatio = 0.95
	minSavedBytes    = 50
)

// MaybeCompress wraps payload in a QRAMC envelope if doing so saves
// meaningful space, and returns the payload unchanged otherwise. The
// returned bool reports whether the envelope was applied.
func MaybeCompress(payload []byte) ([]byte, bool) {
	if len(payload) < minCandidateLen {
		return payload, false
	}

	algo, err := Get(algoGzip)
	if err != nil {
		return payload, false
	}
	compressed, err := algo.Compress(payload)
	if err != nil {
		log.WithError(err).Warn("envelope: compression attempt failed, sending raw payload")
		return payload, false
	}

	envelopeSize := compressionHeaderSize + len(compressed)
	ratio := float64(envelopeSize) / float64(len(payload))
	saved := len(payload) - envelopeSize
	if ratio > maxEnvelopeRatio || saved < minSavedBytes {
		return payload, false
	}

	out := make([]byte, compressionHeaderSize+len(compressed))
	copy(out[0:5], compressionMagic)
	out[5] = algoGzip
	binary.BigEndian.PutUint32(out[6:10], uint32(len(payload)))
	copy(out[10:], compressed)
	return out, true
}

// MaybeDecompress reverses MaybeCompress. If data does not start with the
// QRAMC magic it is returned unchanged. An unrecognized algo byte is
// returned as ErrUnknownAlgorithm, per spec §7, since that is the one
// envelope-level error the codec surfaces instead of absorbing. A
// decompressed-length mismatch against the declared original length is
// logged and tolerated rather than treated as fatal (spec §4.6 step 3,
// §9(c)) — some padding discrepancies upstream of this layer are benign.
func MaybeDecompress(data []byte) ([]byte, bool, error) {
	if len(data) < compressionHeaderSize || string(data[0:5]) != compressionMagic {
		return data, false, nil
	}

	algoID := data[5]
	origLen := binary.BigEndian.Uint32(data[6:10])

	algo, err := Get(algoID)
	if err != nil {
		return nil, false, ErrUnknownAlgorithm
	}

	decompressed, err := algo.Decompress(data[compressionHeaderSize:])
	if err != nil {
		return nil, false, err
	}

	if uint32(len(decompressed)) != origLen {
		log.WithFields(log.Fields{
			"declared": origLen,
			"actual":   len(decompressed),
		}).Warn("envelope: decompressed length does not match declared original length")
	}

	return decompressed, true, nil
}
