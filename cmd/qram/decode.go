package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qramproto/qram-codec/envelope"
	"github.com/qramproto/qram-codec/fountain"
	"github.com/qramproto/qram-codec/metrics"
)

func newDecodeCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "decode <packets-file>",
		Short: "Reconstruct a file from a stream of LT fountain packets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("qram decode: %w", err)
			}
			defer f.Close()

			var dec *fountain.Decoder
			var mtx *metrics.Collectors
			var origLen uint32
			reg := prometheus.NewRegistry()

			r := bufio.NewReader(f)
			done := false
			for !done {
				packet, err := readPacket(r)
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("qram decode: %w", err)
				}

				hdr, err := fountain.ParseHeader(packet)
				if err != nil || hdr.K == 0 {
					log.Debug("qram decode: dropping malformed packet from stream")
					continue
				}
				origLen = hdr.OrigLen

				if dec == nil {
					dec = fountain.NewDecoder(hdr.K, uint32(len(packet)-fountain.HeaderSize), hdr.RunID)
					mtx = metrics.NewCollectors(reg, hdr.RunID)
				}

				done = dec.PushPacket(packet)
				mtx.PacketsIngested.Inc()
				decoded, k := dec.Progress()
				mtx.DecodeProgress.Set(float64(decoded) / float64(k))
			}

			if dec == nil || !dec.IsDone() {
				return fmt.Errorf("qram decode: session incomplete after packet stream ended")
			}

			payload := dec.GetResult(origLen)

			if decompressed, applied, err := envelope.MaybeDecompress(payload); err != nil {
				return fmt.Errorf("qram decode: %w", err)
			} else if applied {
				payload = decompressed
			}

			name, body, ok := envelope.UnwrapFile(payload)
			if ok {
				payload = body
				log.WithField("filename", name).Info("qram decode: recovered file envelope")
			}

			out := os.Stdout
			if outputPath != "" {
				out, err = os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("qram decode: %w", err)
				}
				defer out.Close()
			}
			_, err = out.Write(payload)
			return err
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", "", "output path for the recovered payload (default stdout)")
	return cmd
}
