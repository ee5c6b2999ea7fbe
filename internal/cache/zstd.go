package cache

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdCompression plugs zstd into diskv's Compression interface.
type zstdCompression struct{}

func (zstdCompression) Writer(dst io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(dst)
}

func (zstdCompression) Reader(src io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &zstdReadCloser{dec: dec}, nil
}

// zstdReadCloser adapts *zstd.Decoder, whose Close returns nothing.
type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return nil
}
