package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Entry is one file to include in an archive.
type Entry struct {
	Name string
	Data []byte
}

// Archive is a fully built in-memory ZIP.
type Archive struct {
	Name    string
	Data    []byte
	Entries int
}

// Build writes the given entries into an in-memory ZIP archive.
// Entry order is preserved.
func Build(name string, entries []Entry) (*Archive, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}

	return &Archive{
		Name:    name,
		Data:    buf.Bytes(),
		Entries: len(entries),
	}, nil
}
