// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []string{"서울 강남구 역삼동", "경기 수원시 영통구 영통동", `부산 "해운대구" 우동`})
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "\uFEFF시/도,시/군/구,읍/면/동\n" +
		`"서울","강남구","역삼동"` + "\n" +
		`"경기","수원시","영통구 영통동"` + "\n" +
		`"부산","""해운대구""","우동"`
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() =\n%q\nwant\n%q", got, want)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("output does not start with a UTF-8 byte order mark")
	}
}

func TestWriteCSV_ShortLabel(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"세종"}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 2 || lines[1] != `"세종","",""` {
		t.Errorf("short label row = %q", lines)
	}
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); !errors.Is(err, ErrNoRegions) {
		t.Errorf("WriteCSV(nil) error = %v, want ErrNoRegions", err)
	}
	if err := WriteXLSX(&buf, nil); !errors.Is(err, ErrNoRegions) {
		t.Errorf("WriteXLSX(nil) error = %v, want ErrNoRegions", err)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	labels := []string{"서울 강남구 역삼동", "경기 수원시 영통동"}
	if err := WriteXLSX(&buf, labels); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if strings.Join(rows[0], ",") != "시/도,시/군/구,읍/면/동" {
		t.Errorf("header = %v", rows[0])
	}
	if strings.Join(rows[2], " ") != "경기 수원시 영통동" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	if got := Filename(now, "csv"); got != "수요조사_지역목록_2025-03-10.csv" {
		t.Errorf("Filename() = %q", got)
	}
}
