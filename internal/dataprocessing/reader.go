package dataprocessing

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"mhtidy/pkg/contracts/domain"
)

// ReadCSV parses delimited text into a Table. The first skip records of
// the raw text are discarded, the next record becomes the column names,
// and everything after it becomes data rows. Rows shorter than the header
// are padded with the missing marker.
func ReadCSV(r io.Reader, skip int) (*domain.Table, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = -1 // exports are ragged around the data region
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited text: %w", err)
	}
	return promote(records, skip)
}

// ReadCSVString parses literal delimited text. Test fixtures and inline
// data come through here.
func ReadCSVString(text string, skip int) (*domain.Table, error) {
	return ReadCSV(strings.NewReader(text), skip)
}

// ReadCSVFile parses a delimited file from disk.
func ReadCSVFile(path string, skip int) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, skip)
}

// ReadXLSXFile parses the first sheet of an xlsx export. Agencies ship the
// same tables as both .csv and .xlsx; the pipeline treats them alike.
func ReadXLSXFile(path string, skip int) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in %s", path)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return promote(records, skip)
}

// LoadTable reads a raw export from disk, dispatching on the extension.
func LoadTable(path string, skip int) (*domain.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSXFile(path, skip)
	}
	return ReadCSVFile(path, skip)
}

// skipBOM discards a leading UTF-8 byte order mark. Agency exports and
// Excel-compatible CSVs routinely carry one.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(3); err == nil && lead[0] == 0xEF && lead[1] == 0xBB && lead[2] == 0xBF {
		br.Discard(3)
	}
	return br
}

// promote drops the first skip records, adopts the next one as column
// names, and pads short rows to header width. Rows wider than the header
// keep their extra cells: the adopted header may be a narrow metadata
// line, and the real header row further down must survive intact for a
// later Reslice.
func promote(records [][]string, skip int) (*domain.Table, error) {
	if skip < 0 {
		return nil, fmt.Errorf("skip count must be non-negative, got %d", skip)
	}
	if skip >= len(records) {
		return &domain.Table{}, nil
	}
	records = records[skip:]

	header := records[0]
	cols := make([]string, len(header))
	for i, c := range header {
		cols[i] = strings.TrimSpace(c)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		width := len(cols)
		if len(rec) > width {
			width = len(rec)
		}
		row := make([]string, width)
		copy(row, rec)
		for i := len(rec); i < width; i++ {
			row[i] = domain.Missing
		}
		rows = append(rows, row)
	}

	return &domain.Table{Columns: cols, Rows: rows}, nil
}
