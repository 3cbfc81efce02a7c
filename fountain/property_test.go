package fountain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestPropertyRoundTrip exercises spec invariant 1 (round-trip) across
// generated payloads, block sizes, and run ids, in the style of
// doismellburning-samoyed's rapid-based property tests.
func TestPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 4000).Draw(rt, "size")
		blockSize := rapid.IntRange(1, 300).Draw(rt, "blockSize")
		runID := rapid.Uint32().Draw(rt, "runID")
		seed := rapid.Int64().Draw(rt, "seed")

		payload := make([]byte, size)
		rand.New(rand.NewSource(seed)).Read(payload)

		enc := NewEncoder(payload, blockSize, runID)
		dec := NewDecoder(enc.BlockCount(), enc.BlockSize(), runID)

		k := int(enc.BlockCount())
		budget := k*2 + 1
		var result []byte
		for i := 0; i < budget; i++ {
			if dec.PushPacket(enc.NextPacket()) {
				result = dec.GetResult(enc.OriginalLen())
				break
			}
		}
		require.NotNilf(rt, result, "decoder did not converge within %d packets for k=%d", budget, k)
		require.Equal(rt, payload, result)
	})
}

// TestPropertyDuplicateTolerance exercises spec invariant 2: feeding a
// packet n times behaves like feeding it once.
func TestPropertyDuplicateTolerance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 2000).Draw(rt, "size")
		blockSize := rapid.IntRange(1, 200).Draw(rt, "blockSize")
		runID := rapid.Uint32().Draw(rt, "runID")
		dupCount := rapid.IntRange(1, 4).Draw(rt, "dupCount")
		seed := rapid.Int64().Draw(rt, "seed")

		payload := make([]byte, size)
		rand.New(rand.NewSource(seed)).Read(payload)

		enc := NewEncoder(payload, blockSize, runID)
		dec := NewDecoder(enc.BlockCount(), enc.BlockSize(), runID)

		k := int(enc.BlockCount())
		done := false
		for i := 0; i < k*2+1 && !done; i++ {
			packet := enc.NextPacket()
			for j := 0; j < dupCount; j++ {
				done = dec.PushPacket(packet)
			}
		}
		require.True(rt, done, "decoder did not converge with duplicated delivery")
		require.Equal(rt, payload, dec.GetResult(enc.OriginalLen()))
	})
}

// TestPropertyShuffledDelivery exercises spec invariant 3: decoding is
// invariant under any permutation of the emitted packet sequence.
func TestPropertyShuffledDelivery(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 2000).Draw(rt, "size")
		blockSize := rapid.IntRange(1, 200).Draw(rt, "blockSize")
		runID := rapid.Uint32().Draw(rt, "runID")
		shuffleSeed := rapid.Int64().Draw(rt, "shuffleSeed")
		seed := rapid.Int64().Draw(rt, "seed")

		payload := make([]byte, size)
		rand.New(rand.NewSource(seed)).Read(payload)

		enc := NewEncoder(payload, blockSize, runID)
		k := int(enc.BlockCount())
		budget := k*2 + 1

		packets := make([][]byte, budget)
		for i := range packets {
			packets[i] = enc.NextPacket()
		}
		rand.New(rand.NewSource(shuffleSeed)).Shuffle(len(packets), func(i, j int) {
			packets[i], packets[j] = packets[j], packets[i]
		})

		dec := NewDecoder(enc.BlockCount(), enc.BlockSize(), runID)
		done := false
		for _, p := range packets {
			if dec.PushPacket(p) {
				done = true
			}
		}
		require.True(rt, done, "shuffled delivery did not converge")
		require.Equal(rt, payload, dec.GetResult(enc.OriginalLen()))
	})
}
