package seqio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteSequences writes seqs one per line. The last line has no trailing
// newline.
func WriteSequences(w io.Writer, seqs []string) error {
	bw := bufio.NewWriter(w)
	for i, s := range seqs {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ExportSequences writes seqs to path, creating parent directories.
func ExportSequences(path string, seqs []string) error {
	return writeFile(path, func(w io.Writer) error { return WriteSequences(w, seqs) })
}

// ExportFile writes data to path, creating parent directories.
func ExportFile(path string, data []byte) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ResolveOutputDir returns the directory output files for path go into and
// creates it. An existing directory, a path ending in a separator and a
// path without a file extension name a directory; anything else names a
// file whose parent directory is used.
func ResolveOutputDir(path string) (string, error) {
	if path == "" {
		return ".", nil
	}

	dir := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path, nil
	} else if !strings.HasSuffix(path, string(os.PathSeparator)) && !strings.HasSuffix(path, "/") && filepath.Ext(path) != "" {
		dir = filepath.Dir(path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return filepath.Clean(dir), nil
}

// BaseName returns the input file name without directory or extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
