package parsers

import (
	"fmt"
	"path/filepath"
	"strings"

	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
)

// Parser turns an uploaded score sheet into import rows.
type Parser interface {
	Parse(data []byte) ([]scoredomain.ImportRow, error)
}

// ParserFactory picks a Parser for an upload.
type ParserFactory interface {
	GetParser(filename string) (Parser, error)
}

// Factory creates the appropriate parser based on file extension
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the parser for filename's extension.
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx", ".xls":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %q", ext)
	}
}
