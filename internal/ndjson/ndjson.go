// Package ndjson reads and writes newline-delimited JSON document files.
package ndjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/compress"
	"github.com/composersite/catalog/internal/model"
)

// Write encodes one value per line. HTML characters are not escaped so rich
// text and embeds stay readable.
func Write[T any](w io.Writer, values []T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, v := range values {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding line %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteFile atomically replaces path with the encoded documents, compressed
// according to the file extension.
func WriteFile[T any](path string, values []T) error {
	var buf bytes.Buffer
	if err := Write(&buf, values); err != nil {
		return err
	}

	data, err := compress.ForPath(path).Encode(buf.Bytes())
	if err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ndjson-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// Read returns every non-empty, parseable line. Malformed lines are logged
// and skipped.
func Read(r io.Reader) ([]json.RawMessage, error) {
	var records []json.RawMessage

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		if !json.Valid(data) {
			logrus.Warnf("skipping malformed line %d", line)
			continue
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ReadFile reads path, decompressing it according to its extension.
func ReadFile(path string) ([]json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	data, err := compress.ForPath(path).Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}

	return Read(bytes.NewReader(data))
}

// ReadDocuments decodes the documents in path. Lines with an unknown _type
// are skipped.
func ReadDocuments(path string) ([]model.Document, error) {
	records, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	docs := make([]model.Document, 0, len(records))
	for _, record := range records {
		doc, err := model.Decode(record)
		if errors.Is(err, model.ErrUnknownType) {
			logrus.Warnf("skipping document: %v", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
