// Package dataset turns raw source rows into typed records and keeps the
// most recently loaded snapshot.
package dataset

import (
	"strconv"
	"strings"
	"time"

	"recycling/internal/core"
)

// Zone-less layouts are interpreted in the loader's location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseUsers maps rows positionally to users. Missing fields become "".
func ParseUsers(rows [][]string) []core.User {
	out := make([]core.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.User{
			UserID:   field(r, 0),
			Name:     field(r, 1),
			Email:    field(r, 2),
			Phone:    field(r, 3),
			RoleName: field(r, 4),
		})
	}
	return out
}

// ParseDropboxes maps rows positionally to dropboxes.
func ParseDropboxes(rows [][]string) []core.Dropbox {
	out := make([]core.Dropbox, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.Dropbox{
			DropboxID:   field(r, 0),
			OwnerUserID: field(r, 1),
			Location:    field(r, 2),
			Description: field(r, 3),
		})
	}
	return out
}

// ParseTransactions maps rows positionally to transactions. Unparseable
// timestamps become the zero time and unparseable counts become invalid.
func ParseTransactions(rows [][]string, loc *time.Location) []core.Transaction {
	if loc == nil {
		loc = time.UTC
	}
	out := make([]core.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.Transaction{
			TransactionID: field(r, 0),
			Timestamp:     ParseTimestamp(field(r, 1), loc),
			DropboxID:     field(r, 2),
			UserID:        field(r, 3),
			Bottles:       parseCountField(r, 4),
		})
	}
	return out
}

// ParseCount reads a bottle count. Blank text counts as zero; negative,
// fractional or non-numeric text yields an invalid count.
func ParseCount(s string) core.Count {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.ValidCount(0)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return core.Count{}
	}
	return core.ValidCount(n)
}

// ParseTimestamp tries each supported layout in turn and returns the zero
// time when none match.
func ParseTimestamp(s string, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// a missing count column is invalid, unlike a blank one
func parseCountField(r []string, i int) core.Count {
	if i >= len(r) {
		return core.Count{}
	}
	return ParseCount(r[i])
}

func field(r []string, i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}
