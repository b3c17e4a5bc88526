// Package csvimport turns CSV text into flashcard rows. A malformed
// or empty input fails before any row is produced; there is no
// partial import.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cardpress/cardpress/pkg/models"
	"github.com/cardpress/cardpress/pkg/utils"
)

// column indexes when no header row is present
const (
	colWord = iota
	colSubtitle
	colImageURL
)

// Parse reads rows from CSV text. A first record containing any of
// the column names word/subtitle/imageurl (case-insensitive) is
// treated as a header and maps columns by name; otherwise columns are
// positional: word, subtitle, imageUrl.
func Parse(r io.Reader) ([]models.FlashcardRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV input is empty")
	}

	wordCol, subtitleCol, imageCol := colWord, colSubtitle, colImageURL
	start := 0
	if cols, ok := headerColumns(records[0]); ok {
		wordCol, subtitleCol, imageCol = cols[0], cols[1], cols[2]
		start = 1
	}
	if start == len(records) {
		return nil, fmt.Errorf("CSV input has a header but no rows")
	}

	rows := make([]models.FlashcardRow, 0, len(records)-start)
	for _, rec := range records[start:] {
		row := models.FlashcardRow{ID: utils.NewID()}
		row.Word = field(rec, wordCol)
		row.Subtitle = field(rec, subtitleCol)
		if url := field(rec, imageCol); url != "" {
			row.SetImageURL(url)
		}
		if row.Word == "" && row.Subtitle == "" && !row.HasImage() {
			continue // skip fully blank records
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV input contains no usable rows")
	}
	return rows, nil
}

// headerColumns detects a header record and returns the column index
// of word, subtitle and imageurl (-1 when absent).
func headerColumns(record []string) ([3]int, bool) {
	cols := [3]int{-1, -1, -1}
	found := false
	for i, name := range record {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "word":
			cols[0] = i
			found = true
		case "subtitle":
			cols[1] = i
			found = true
		case "imageurl":
			cols[2] = i
			found = true
		}
	}
	return cols, found
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
