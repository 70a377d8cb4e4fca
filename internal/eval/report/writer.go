package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
)

type Format string

const (
	FormatTrec  Format = "trec"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTrec, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", apperr.NewValidationf("unknown output format %q (want trec, table, json or yaml)", s)
	}
}

func Write(r *Report, f Format, w io.Writer) error {
	switch f {
	case FormatTable:
		return WriteTable(r, w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	default:
		return WriteTrec(r, w)
	}
}

func WriteFile(r *Report, f Format, path string) error {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := Write(r, f, fh); err != nil {
		_ = fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
