package google

import (
	"fmt"
	"strings"

	"recycling/internal/sources"
)

// sheetRange quotes a tab name so that the whole tab is selected.
func sheetRange(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

// parseValues stringifies cells and drops the header row and trailing
// blank rows. Rows keep the width the API returned; missing trailing
// cells are handled by the row parsers.
func parseValues(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, toStrings(v))
	}
	return sources.DropHeader(rows)
}

func toStrings(in []interface{}) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == nil {
			out = append(out, "")
			continue
		}
		out = append(out, strings.TrimSpace(fmt.Sprint(v)))
	}
	return out
}
