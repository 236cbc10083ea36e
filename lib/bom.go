package lib

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedBOM = errors.New("part list must be an xlsx or csv file")

/*
	Column headers that hold a supplier part number, in order of
	preference.
*/
var partColumns = []string{
	"supplier part number",
	"digi-key part number",
	"digikey part number",
	"digi-key",
	"dk pn",
	"part number",
}

/*
	Read supplier part numbers from a BOM spreadsheet or CSV file. The
	column is found by its header; without a recognizable header every row
	of the first column is taken.
*/
func ReadPartList(src string) ([]string, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(src)) {
	case ".xlsx", ".xlsm":
		rows, err = readSheetRows(src)
	case ".csv":
		rows, err = readCSVRows(src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBOM, src)
	}
	if err != nil {
		return nil, err
	}

	return partsFromRows(rows), nil
}

func readSheetRows(src string) ([][]string, error) {
	f, err := excelize.OpenFile(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return [][]string{}, nil
	}

	return f.GetRows(sheets[0])
}

func readCSVRows(src string) ([][]string, error) {
	fp, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	reader := csv.NewReader(fp)
	reader.FieldsPerRecord = -1

	rows := [][]string{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func partsFromRows(rows [][]string) []string {
	if len(rows) == 0 {
		return []string{}
	}

	column, start := 0, 0
	if i := partColumn(rows[0]); i >= 0 {
		column, start = i, 1
	}

	parts := []string{}
	for _, row := range rows[start:] {
		if column >= len(row) {
			continue
		}

		part := strings.TrimSpace(row[column])
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}

	return parts
}

func partColumn(header []string) int {
	for _, name := range partColumns {
		for i, cell := range header {
			if strings.EqualFold(strings.TrimSpace(cell), name) {
				return i
			}
		}
	}

	return -1
}
