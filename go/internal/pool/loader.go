package pool

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// RawRow is one rank-file row before the build transform. ADP values are nil
// when the source left the cell blank or unparseable.
type RawRow struct {
	Player  string
	Pos     string
	Team    string
	ESPNADP *float64
	AvgADP  *float64
}

// LoadCSV reads a delimited rank file into raw rows. Header names are
// lower-cased with spaces collapsed to underscores before lookup, matching
// however the export tool felt like capitalizing them that year.
func LoadCSV(path string) ([]RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rankings file: %w", err)
	}
	defer f.Close()

	rows, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rankings file %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("rows", len(rows)).Msg("loaded rankings file")
	return rows, nil
}

func parseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[normalizeHeader(name)] = i
	}
	for _, required := range []string{"player", "pos", "team"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := RawRow{
			Player:  strings.TrimSpace(field(record, col, "player")),
			Pos:     strings.TrimSpace(field(record, col, "pos")),
			Team:    strings.TrimSpace(field(record, col, "team")),
			ESPNADP: parseADP(field(record, col, "espn")),
			AvgADP:  parseADP(field(record, col, "avg")),
		}
		if row.Player == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func normalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func parseADP(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
