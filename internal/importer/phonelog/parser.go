// Package phonelog parses the office's CSV log of reservations taken over
// the phone, so they can be pushed through the regular booking path instead
// of living only in a spreadsheet.
package phonelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/filski95/web-app-challets/internal/booking"
	enc "github.com/filski95/web-app-challets/internal/encoding"
)

// Expected header columns. Extra columns are ignored; order is free.
const (
	colHouse   = "house"
	colStart   = "start_date"
	colEnd     = "end_date"
	colProfile = "profile_id"
	colOwner   = "owner_id"
)

var requiredCols = []string{colHouse, colStart, colEnd, colProfile, colOwner}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]booking.ReserveParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, err := findHeader(rows)
	if err != nil {
		return nil, err
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func findHeader(rows [][]string) (colIndex, int, error) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if hasRequired(cols) {
			return cols, rowIdx, nil
		}
	}

	return nil, 0, fmt.Errorf("no header row found: expected columns %s", strings.Join(requiredCols, ", "))
}

func hasRequired(cols colIndex) bool {
	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]booking.ReserveParams, error) {
	var params []booking.ReserveParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based line number in the file

		if blankRow(row) {
			continue
		}

		p, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		params = append(params, p)
	}

	return params, nil
}

func parseRow(cols colIndex, row []string) (booking.ReserveParams, error) {
	houseNumber, err := strconv.Atoi(cell(row, cols[colHouse]))
	if err != nil {
		return booking.ReserveParams{}, fmt.Errorf("house: %w", err)
	}

	start, err := time.Parse(time.DateOnly, cell(row, cols[colStart]))
	if err != nil {
		return booking.ReserveParams{}, fmt.Errorf("start_date: %w", err)
	}

	end, err := time.Parse(time.DateOnly, cell(row, cols[colEnd]))
	if err != nil {
		return booking.ReserveParams{}, fmt.Errorf("end_date: %w", err)
	}

	profileID, err := strconv.ParseInt(cell(row, cols[colProfile]), 10, 64)
	if err != nil {
		return booking.ReserveParams{}, fmt.Errorf("profile_id: %w", err)
	}

	ownerID, err := uuid.Parse(cell(row, cols[colOwner]))
	if err != nil {
		return booking.ReserveParams{}, fmt.Errorf("owner_id: %w", err)
	}

	return booking.ReserveParams{
		CustomerProfileID: profileID,
		OwnerID:           ownerID,
		HouseNumber:       houseNumber,
		StartDate:         start,
		EndDate:           end,
	}, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
