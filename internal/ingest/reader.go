package ingest

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrEmptyFile indicates the sales file had no data rows after the header.
var ErrEmptyFile = errors.New("sales file is empty or contains only a header")

// ReadSalesFile reads a legacy sales export and returns its data lines.
//
// The exports come from several old point-of-sale systems, so the bytes
// are not guaranteed to be UTF-8: valid UTF-8 is taken as-is, anything
// else is decoded as Windows-1252, falling back to ISO-8859-1. The
// header line and blank lines are dropped.
func ReadSalesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sales file: %w", err)
	}

	text, err := decodeLegacy(data)
	if err != nil {
		return nil, fmt.Errorf("decode sales file %s: %w", path, err)
	}

	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(rawLines) > 0 {
		// First line is the column header.
		rawLines = rawLines[1:]
	}

	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	return lines, nil
}

// decodeLegacy decodes file bytes using the encodings the legacy
// exporters are known to emit.
func decodeLegacy(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		decoded, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}

	return "", errors.New("no supported encoding could decode the file")
}
