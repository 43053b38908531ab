// Package importer parses the CSV extracts exported from the planning
// system into raw snapshot rows. Parsing is structural only: headers
// must be present, but field values pass through verbatim, including
// malformed quantities and dates. Value coercion belongs to the demand
// builder, where it is counted in run diagnostics.
package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// skipBOM strips a UTF-8 byte order mark, which Excel prepends to CSV
// exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	if peeked[0] == 0xEF && peeked[1] == 0xBB && peeked[2] == 0xBF {
		br.Discard(3)
	}
	return br
}

// columns maps header names to their positions, case-insensitively and
// ignoring surrounding whitespace.
type columns map[string]int

func readHeader(reader *csv.Reader, required []string) (columns, error) {
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func (c columns) get(record []string, name string) string {
	i, ok := c[strings.ToLower(name)]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseRows drives one CSV file: header validation, then one callback
// per data row. Short records are tolerated; missing cells read as
// empty strings.
func parseRows(r io.Reader, required []string, row func(cols columns, record []string)) error {
	reader := csv.NewReader(skipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	cols, err := readHeader(reader, required)
	if err != nil {
		return err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading row: %w", err)
		}
		row(cols, record)
	}
}
