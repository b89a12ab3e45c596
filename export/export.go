// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/region-survey/regions"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	bom       = "\uFEFF"
	sheetName = "지역목록"
)

// Header names the three columns: top, sub and leaf division.
var Header = []string{"시/도", "시/군/구", "읍/면/동"}

var ErrNoRegions = errors.New("no regions to export")

// Rows splits each label into its three divisions, keeping input order.
func Rows(labels []string) [][]string {
	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		top, sub, leaf := regions.SplitLabel(label)
		rows = append(rows, []string{top, sub, leaf})
	}
	return rows
}

// WriteCSV writes a byte order mark, the plain header line, then one row per
// label with every field quoted. Lines are joined by "\n" with no trailing
// newline.
func WriteCSV(w io.Writer, labels []string) error {
	if len(labels) == 0 {
		return ErrNoRegions
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(bom)
	bw.WriteString(strings.Join(Header, ","))

	for _, row := range Rows(labels) {
		bw.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(field, `"`, `""`))
			bw.WriteByte('"')
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes the same rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, labels []string) error {
	if len(labels) == 0 {
		return ErrNoRegions
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, row := range Rows(labels) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row[0], row[1], row[2]}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "C", 16); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// Filename builds the download name, e.g. 수요조사_지역목록_2025-03-10.csv.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("수요조사_지역목록_%s.%s", now.Format("2006-01-02"), ext)
}
