// Package compress provides the codecs used for NDJSON exports and cached
// documents.
package compress

import (
	"path/filepath"
	"strings"
)

// Compress encodes and decodes whole payloads.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

var (
	_ Compress = GZip{}
	_ Compress = Brotli{}
	_ Compress = LZ4{}
	_ Compress = Nop{}
)

// ForPath picks a codec from the file extension: .gz, .br and .lz4 are
// compressed, anything else is written as is.
func ForPath(path string) Compress {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return NewGZip()
	case ".br":
		return NewBrotli()
	case ".lz4":
		return NewLZ4()
	default:
		return NewNop()
	}
}

// ByName returns the codec registered under name, or Nop for an unknown
// name.
func ByName(name string) Compress {
	switch name {
	case "gzip":
		return NewGZip()
	case "brotli":
		return NewBrotli()
	case "lz4":
		return NewLZ4()
	default:
		return NewNop()
	}
}
