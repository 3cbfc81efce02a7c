// Command qram is a file-based harness around the fountain codec core: it
// is not the air-gapped optical transport spec.md describes (that is the
// barcode renderer/scanner's job, out of scope here), but a convenience for
// exercising the encoder and decoder against ordinary files from a
// terminal.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qram",
		Short: "Rateless LT fountain codec for optical bulk transfer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	return root
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("qram: command failed")
		os.Exit(1)
	}
}
