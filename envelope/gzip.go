package envelope

import (
	"bytes"
	"compress/gzip"
	"io"
)

// algoGzip is algo byte 1, the only compression algorithm spec.md defines.
// The wire format is literally "gzip-compressed bytes" (spec §3), so this
// wraps the standard library's compress/gzip rather than a third-party
// compressor — there is no idiomatic substitute when the format itself is
// gzip's.
const algoGzip byte = 1

type gzipAlgorithm struct{}

func (gzipAlgorithm) ID() byte     { return algoGzip }
func (gzipAlgorithm) Name() string { return "gzip" }

func (gzipAlgorithm) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gzipAlgorithm) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func init() {
	Register(gzipAlgorithm{})
}
