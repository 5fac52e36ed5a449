package parsers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
)

// columns maps a sheet's fields to cell indexes. date is -1 when absent.
type columns struct {
	first, last, week, bunkerOne, bunkerTwo, date int
}

var positional = columns{first: 0, last: 1, week: 2, bunkerOne: 3, bunkerTwo: 4, date: 5}

var dateLayouts = []string{
	time.DateOnly,
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	time.RFC3339,
}

// parseRows reads first,last,week,bunker_one,bunker_two[,date] rows. A first
// row whose week cell is not a number is taken as a header and its names
// decide the column order.
func parseRows(records [][]string) ([]scoredomain.ImportRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("score sheet is empty")
	}

	cols := positional
	start := 0
	if isHeader(records[0]) {
		var err error
		cols, err = headerColumns(records[0])
		if err != nil {
			return nil, err
		}
		start = 1
	}

	var rows []scoredomain.ImportRow
	for i := start; i < len(records); i++ {
		rec := records[i]
		if blank(rec) {
			continue
		}
		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		row.Line = i + 1
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no score rows found")
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	if len(rec) <= positional.week {
		return true
	}
	_, err := strconv.Atoi(strings.TrimSpace(rec[positional.week]))
	return err != nil
}

func headerColumns(header []string) (columns, error) {
	cols := columns{
		first:     findColumn(header, "first", "first_name", "firstname"),
		last:      findColumn(header, "last", "last_name", "lastname", "surname"),
		week:      findColumn(header, "week", "wk"),
		bunkerOne: findColumn(header, "bunker_one", "bunker1", "b1"),
		bunkerTwo: findColumn(header, "bunker_two", "bunker2", "b2"),
		date:      findColumn(header, "date", "match_date"),
	}
	for name, idx := range map[string]int{
		"first":      cols.first,
		"last":       cols.last,
		"week":       cols.week,
		"bunker_one": cols.bunkerOne,
		"bunker_two": cols.bunkerTwo,
	} {
		if idx < 0 {
			return columns{}, fmt.Errorf("header is missing the %s column", name)
		}
	}
	return cols, nil
}

// findColumn matches header cells case-insensitively, ignoring spaces,
// underscores and hyphens.
func findColumn(header []string, names ...string) int {
	for i, col := range header {
		c := normalize(col)
		for _, n := range names {
			if c == normalize(n) {
				return i
			}
		}
	}
	return -1
}

func normalize(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func parseRow(rec []string, cols columns) (scoredomain.ImportRow, error) {
	row := scoredomain.ImportRow{
		FirstName: cell(rec, cols.first),
		LastName:  cell(rec, cols.last),
	}
	if row.FirstName == "" || row.LastName == "" {
		return row, fmt.Errorf("first and last name are required")
	}

	var err error
	if row.Week, err = number(rec, cols.week, "week"); err != nil {
		return row, err
	}
	if row.BunkerOne, err = number(rec, cols.bunkerOne, "bunker one"); err != nil {
		return row, err
	}
	if row.BunkerTwo, err = number(rec, cols.bunkerTwo, "bunker two"); err != nil {
		return row, err
	}

	if raw := cell(rec, cols.date); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return row, err
		}
		row.MatchDate = d
	}
	return row, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// number reads an integer cell. Empty and "-" cells count as 0.
func number(rec []string, idx int, field string) (int, error) {
	v := cell(rec, idx)
	if v == "" || v == "-" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("non-numeric %s value %q", field, v)
	}
	return n, nil
}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", v)
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
