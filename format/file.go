package format

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/s2"

	"github.com/gogpu/sketch"
)

// bufferSize is the buffered I/O size for file reads and writes.
const bufferSize = 256 * 1024

// SaveFile serializes the drawing to path atomically: the stream is
// written to a temporary file in the same directory, synced, and renamed
// over the target. A failure leaves any existing file at path untouched.
func SaveFile(path string, d *sketch.Drawing) error {
	return saveFileWith(path, d, func(w *bufio.Writer, d *sketch.Drawing) error {
		return Save(w, d)
	})
}

// SaveFileCompressed is SaveFile with the stream wrapped in s2
// compression. Files written this way load with LoadFileCompressed.
func SaveFileCompressed(path string, d *sketch.Drawing) error {
	return saveFileWith(path, d, func(w *bufio.Writer, d *sketch.Drawing) error {
		zw := s2.NewWriter(w)
		if err := Save(zw, d); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	})
}

func saveFileWith(path string, d *sketch.Drawing, write func(*bufio.Writer, *sketch.Drawing) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("format: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriterSize(tmp, bufferSize)
	if err := write(bw, d); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("format: flush: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("format: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("format: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("format: rename: %w", err)
	}
	tmpName = ""
	sketch.Logger().Debug("drawing saved", "path", path)
	return nil
}

// LoadFile deserializes a drawing from an uncompressed file written by
// SaveFile.
func LoadFile(path string) (*sketch.Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("format: open: %w", err)
	}
	defer f.Close()
	return Load(bufio.NewReaderSize(f, bufferSize))
}

// LoadFileCompressed deserializes a drawing from an s2-compressed file
// written by SaveFileCompressed.
func LoadFileCompressed(path string) (*sketch.Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("format: open: %w", err)
	}
	defer f.Close()
	return Load(s2.NewReader(bufio.NewReaderSize(f, bufferSize)))
}
