package bank

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadStats reports what happened while reading a bank file.
type LoadStats struct {
	Rows      int // data rows seen
	Discarded int // rows dropped for an empty normalized answer
}

// Load reads a question bank from a .csv or .xlsx file. Columns stem,
// option_A, option_B and answer are required; option_C..option_F are
// optional. Rows whose normalized answer is empty are discarded.
func Load(path string) ([]Question, LoadStats, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, LoadStats{}, fmt.Errorf("bank %s: unsupported file type (want .csv or .xlsx)", path)
	}
}

// LoadCSV reads a bank from a CSV file with a header row.
func LoadCSV(path string) ([]Question, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read bank header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("bank %s: %w", path, err)
	}

	var qs []Question
	var stats LoadStats
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read bank row: %w", err)
		}
		stats.Rows++
		q, ok := rowToQuestion(row, cols)
		if !ok {
			stats.Discarded++
			continue
		}
		qs = append(qs, q)
	}
	return qs, stats, nil
}

// LoadXLSX reads a bank from the first sheet of an .xlsx workbook. The
// header row uses the same column names as the CSV form.
func LoadXLSX(path string) ([]Question, LoadStats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, LoadStats{}, fmt.Errorf("bank %s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read bank sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, LoadStats{}, fmt.Errorf("bank %s: empty sheet", path)
	}
	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("bank %s: %w", path, err)
	}

	var qs []Question
	var stats LoadStats
	for _, row := range rows[1:] {
		stats.Rows++
		q, ok := rowToQuestion(row, cols)
		if !ok {
			stats.Discarded++
			continue
		}
		qs = append(qs, q)
	}
	return qs, stats, nil
}

// columns maps field name to column index; -1 means the column is absent.
type columns struct {
	stem    int
	options [6]int // A..F
	answer  int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{stem: -1, answer: -1, options: [6]int{-1, -1, -1, -1, -1, -1}}
	for i, h := range header {
		name := strings.TrimSpace(h)
		switch {
		case strings.EqualFold(name, "stem"):
			cols.stem = i
		case strings.EqualFold(name, "answer"):
			cols.answer = i
		default:
			for j, label := range optionLabels {
				if strings.EqualFold(name, "option_"+label) {
					cols.options[j] = i
				}
			}
		}
	}
	if cols.stem < 0 || cols.answer < 0 {
		return cols, fmt.Errorf("missing required column stem/answer")
	}
	if cols.options[0] < 0 || cols.options[1] < 0 {
		return cols, fmt.Errorf("missing required column option_A/option_B")
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func rowToQuestion(row []string, cols columns) (Question, bool) {
	q := Question{
		Stem:    cell(row, cols.stem),
		OptionA: cell(row, cols.options[0]),
		OptionB: cell(row, cols.options[1]),
		OptionC: cell(row, cols.options[2]),
		OptionD: cell(row, cols.options[3]),
		OptionE: cell(row, cols.options[4]),
		OptionF: cell(row, cols.options[5]),
		Answer:  NormalizeAnswer(cell(row, cols.answer)),
	}
	if q.Answer == "" {
		return Question{}, false
	}
	return q, true
}
