package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MediaFile is an uploaded file that has already been written to storage.
// Only Filename is persisted on the report.
type MediaFile struct {
	Filename string
	MimeType string
}

// EncodeMediaList serializes a media list for the JSONB column.
// An empty list encodes to nil so the column stays NULL.
func EncodeMediaList(list []string) ([]byte, error) {
	if len(list) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode media list: %w", err)
	}
	return b, nil
}

// DecodeMediaList parses a persisted media list. NULL and JSON null decode
// to a nil slice.
func DecodeMediaList(raw []byte) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode media list: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}
