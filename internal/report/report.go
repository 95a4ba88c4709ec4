// Package report exports an estimate as JSON or as a PDF summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/alexanderramin/estimo/internal/wire"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "json" or "pdf" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected json or pdf)", s)
	}
}

// FormatForPath picks the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FormatPDF
	}
	return FormatJSON
}

// Write encodes e to w in the given format.
func Write(w io.Writer, f Format, e domain.Estimate) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, e)
	case FormatPDF:
		return WritePDF(w, e)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteFile exports e to path, creating parent directories.
func WriteFile(path string, f Format, e domain.Estimate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(file, f, e); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}

// WriteJSON writes e in the backend's wire shape, indented.
func WriteJSON(w io.Writer, e domain.Estimate) error {
	data, err := json.MarshalIndent(wire.FromEstimate(e), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding estimate: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing estimate: %w", err)
	}
	return nil
}
