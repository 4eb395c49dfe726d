package sources

import "strings"

// SplitTable splits delimited text into data rows. Lines are separated by
// "\n" with an optional trailing "\r", fields by ",". Quoting is not
// interpreted. The first line is a header and is discarded, as are
// trailing lines that are entirely blank.
func SplitTable(text string) [][]string {
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return [][]string{}
	}
	lines = lines[1:]
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Split(strings.TrimSuffix(line, "\r"), ","))
	}
	return rows
}

// DropHeader applies the SplitTable row rules to an already tabular
// source: the first row is discarded along with trailing blank rows.
func DropHeader(values [][]string) [][]string {
	if len(values) <= 1 {
		return [][]string{}
	}
	rows := values[1:]
	for len(rows) > 0 && blankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func blank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func blankRow(row []string) bool {
	for _, f := range row {
		if !blank(f) {
			return false
		}
	}
	return true
}
