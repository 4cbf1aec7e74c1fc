package rootgo

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// Compression identifies the compression, if any, applied to a tree file.
type Compression byte

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionGzip
	CompressionZip
	CompressionXZ
	CompressionZlib
	CompressionBZip2
)

// Magic byte signatures, from https://stackoverflow.com/a/19127748/199475
var compressionSigs = map[Compression][]byte{
	CompressionGzip:  {0x1f, 0x8b, 0x08},
	CompressionZip:   {0x50, 0x4b, 0x03, 0x04},
	CompressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	CompressionZlib:  {0x1f, 0x9d},
	CompressionBZip2: {0x42, 0x5a, 0x68},
}

// DetectCompression sniffs the leading bytes of r without consuming them and
// reports the compression they announce. A stream shorter than the longest
// known signature is reported as uncompressed.
func DetectCompression(r *bufio.Reader) (Compression, error) {
	lead, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return CompressionUnknown, err
	}

Sigs:
	for compression, sig := range compressionSigs {
		if len(lead) < len(sig) {
			continue
		}
		for i := range sig {
			if lead[i] != sig[i] {
				continue Sigs
			}
		}
		return compression, nil
	}

	return CompressionNone, nil
}

// NewDecompressingReader wraps r so that reads yield the decompressed
// stream, whichever of the recognized compression formats r carries. An
// unrecognized stream is passed through unmodified.
func NewDecompressingReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	compression, err := DetectCompression(br)
	if err != nil {
		return nil, pfx.Err(err)
	}

	switch compression {
	case CompressionGzip:
		return gzip.NewReader(br)
	case CompressionZip:
		return zipstream.NewReader(br), nil
	case CompressionBZip2:
		return bzip2.NewReader(br), nil
	case CompressionXZ:
		return xz.NewReader(br, 0)
	case CompressionZlib:
		return zlib.NewReader(br)
	}

	return br, nil
}

// OpenMaybeCompressed opens the named file for reading, transparently
// decompressing it if it is compressed. Closing the returned ReadCloser
// closes the underlying file.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewDecompressingReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &readFileCloser{Reader: r, f: f}, nil
}

// readFileCloser reads from the (possibly decompressing) reader but closes
// the file that backs it.
type readFileCloser struct {
	io.Reader
	f *os.File
}

func (r *readFileCloser) Close() error {
	return r.f.Close()
}
