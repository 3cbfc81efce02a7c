package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qramproto/qram-codec/envelope"
	"github.com/qramproto/qram-codec/fountain"
	"github.com/qramproto/qram-codec/metrics"
)

func newEncodeCmd() *cobra.Command {
	var (
		blockSize  int
		runID      uint32
		count      int
		compress   bool
		withName   bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "encode <input-file>",
		Short: "Split a file into LT fountain packets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := uuid.New()
			logger := log.WithField("session_uuid", sessionID.String())

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("qram encode: %w", err)
			}

			if withName {
				data, err = envelope.WrapFile(filepath.Base(args[0]), data)
				if err != nil {
					return fmt.Errorf("qram encode: %w", err)
				}
			}
			if compress {
				wrapped, applied := envelope.MaybeCompress(data)
				data = wrapped
				logger.WithField("compressed", applied).Debug("qram encode: compression envelope evaluated")
			}

			if runID == 0 {
				runID = randomRunID()
			}

			enc := fountain.NewEncoder(data, blockSize, runID)
			if count == 0 {
				// Default to ~15% overhead above k, the typical observed
				// range from spec §4.5's termination analysis.
				count = int(float64(enc.BlockCount())*1.15) + 1
			}

			reg := prometheus.NewRegistry()
			mtx := metrics.NewCollectors(reg, runID)

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("qram encode: %w", err)
				}
				defer f.Close()
				out = f
			}

			for i := 0; i < count; i++ {
				packet := enc.NextPacket()
				if err := writePacket(out, packet); err != nil {
					return fmt.Errorf("qram encode: %w", err)
				}
				mtx.PacketsEmitted.Inc()
			}

			logger.WithFields(log.Fields{
				"run_id":     runID,
				"k":          enc.BlockCount(),
				"block_size": enc.BlockSize(),
				"packets":    count,
			}).Info("qram encode: done")
			return nil
		},
	}

	cmd.Flags().IntVar(&blockSize, "block-size", 512, "bytes per source block")
	cmd.Flags().Uint32Var(&runID, "run-id", 0, "session id (0 picks a random id)")
	cmd.Flags().IntVar(&count, "count", 0, "packets to emit (0 picks a default overhead above k)")
	cmd.Flags().BoolVar(&compress, "compress", false, "wrap the payload in a compression envelope when beneficial")
	cmd.Flags().BoolVar(&withName, "filename", false, "wrap the payload in a file envelope carrying its basename")
	cmd.Flags().StringVar(&outputPath, "output", "", "output path for the packet stream (default stdout)")

	return cmd
}

// randomRunID picks a non-deterministic session id the way an encoder at
// the start of a real transfer would, per spec §3: "run_id (random 32-bit,
// chosen by encoder at session start)".
func randomRunID() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is not recoverable; a fixed run_id of 1 is
		// still a valid session id, just a predictable one.
		return 1
	}
	return binary.BigEndian.Uint32(buf[:])
}
