// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package compress opens and creates optionally compressed files.
//
// The format written is chosen by file extension: .gz (gzip), .dz (dictzip),
// .zst (zstd) and .lz4 (lz4). Any other extension is written uncompressed.
// When reading, dictzip files are recognized by extension and the other
// formats by their magic number, so a compressed file is read correctly
// regardless of its name.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format is a compression format.
type Format int

const (
	// None is uncompressed data.
	None Format = iota

	// Gzip is gzip compressed data.
	Gzip

	// DictZip is dictzip compressed data. Dictzip files are valid gzip files
	// with an additional random access table.
	DictZip

	// Zstd is Zstandard compressed data.
	Zstd

	// LZ4 is LZ4 frame compressed data.
	LZ4
)

// String implements [fmt.Stringer.String].
func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case DictZip:
		return "dictzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// FormatFromPath returns the format implied by the file extension of path.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".dz":
		return DictZip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// sniff returns the format of the data from its magic number.
func sniff(magic []byte) Format {
	switch {
	case bytes.HasPrefix(magic, zstdMagic):
		return Zstd
	case bytes.HasPrefix(magic, lz4Magic):
		return LZ4
	case bytes.HasPrefix(magic, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// readCloser closes the decompressor and then the file.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		// Some decompressors close the file themselves.
		if err := c(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open opens the file at path for reading and decompresses it if needed.
// Closing the returned reader closes the file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	format := FormatFromPath(path)
	if format != DictZip {
		magic := make([]byte, 4)
		n, err := io.ReadFull(f, magic)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			f.Close()
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		format = sniff(magic[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
	}

	r, err := NewReader(f, format)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return &readCloser{
		Reader:  r,
		closers: []func() error{r.Close, f.Close},
	}, nil
}

// NewReader returns a reader that decompresses data in the given format
// from f.
func NewReader(f *os.File, format Format) (io.ReadCloser, error) {
	switch format {
	case Gzip:
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return z, nil
	case DictZip:
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating dictzip reader: %w", err)
		}
		return z, nil
	case Zstd:
		z, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		return z.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(f)), nil
	default:
		return io.NopCloser(f), nil
	}
}

// writeCloser closes the compressor and then the file.
type writeCloser struct {
	io.Writer
	closers []func() error
}

func (w *writeCloser) Close() error {
	var errs []error
	for _, c := range w.closers {
		if err := c(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Create creates the file at path for writing, compressing the data written
// in the format implied by its extension. The returned writer must be closed
// to flush the compressed data.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}

	w, err := NewWriter(f, FormatFromPath(path))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}
	return &writeCloser{
		Writer:  w,
		closers: []func() error{w.Close, f.Close},
	}, nil
}

// NewWriter returns a writer that compresses data in the given format to f.
// Closing the writer does not close f.
func NewWriter(f *os.File, format Format) (io.WriteCloser, error) {
	switch format {
	case Gzip:
		z, err := gzip.NewWriterLevel(f, gzip.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("creating gzip writer: %w", err)
		}
		return z, nil
	case DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			return nil, fmt.Errorf("creating dictzip writer: %w", err)
		}
		return z, nil
	case Zstd:
		z, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return nil, fmt.Errorf("creating zstd writer: %w", err)
		}
		return z, nil
	case LZ4:
		return lz4.NewWriter(f), nil
	default:
		return nopWriteCloser{f}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
