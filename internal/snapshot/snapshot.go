// Package snapshot serializes registry snapshots for tooling.
package snapshot

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flute-go/reflection/runtime/metadata"
)

// gzipMagic is the two-byte header of every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// Serialize converts a snapshot to indented JSON.
// Snapshots list types, members and keys in sorted order, so equal registries
// serialize to equal bytes apart from the ID and timestamp.
func Serialize(schema *metadata.Schema) ([]byte, error) {
	if schema == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	return data, nil
}

// Deserialize parses JSON produced by Serialize.
func Deserialize(data []byte) (*metadata.Schema, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("snapshot data is empty")
	}

	var schema metadata.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if schema.Version != metadata.SchemaVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q (want %q)", schema.Version, metadata.SchemaVersion)
	}

	return &schema, nil
}

// Compress compresses data using gzip at the best compression level.
func Compress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("data cannot be nil")
	}

	if len(data) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer

	writer, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses gzip-compressed data.
func Decompress(data []byte) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("data cannot be nil")
	}

	if len(data) == 0 {
		return []byte{}, nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress data: %w", err)
	}

	return decompressed, nil
}

// WriteFile writes a snapshot to path, creating parent directories.
// Paths ending in ".gz" are gzip-compressed.
func WriteFile(schema *metadata.Schema, path string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	data, err := Serialize(schema)
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".gz") {
		data, err = Compress(data)
		if err != nil {
			return fmt.Errorf("failed to compress snapshot: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot to %s: %w", path, err)
	}

	return nil
}

// ReadFile reads a snapshot written by WriteFile. Compressed files are
// detected by their gzip header, whatever their name.
func ReadFile(path string) (*metadata.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	if bytes.HasPrefix(data, gzipMagic) {
		data, err = Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot %s: %w", path, err)
		}
	}

	schema, err := Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schema, nil
}
