package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
)

// CSVParser parses CSV score sheets
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads every record and hands them to the shared row reader.
func (p *CSVParser) Parse(data []byte) ([]scoredomain.ImportRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, record)
	}

	rows, err := parseRows(records)
	if err != nil {
		return nil, fmt.Errorf("CSV: %w", err)
	}
	return rows, nil
}
