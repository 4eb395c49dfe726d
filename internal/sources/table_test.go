package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want [][]string
	}{
		{
			name: "header and rows",
			text: "userId,name\nU1,Ann\nU2,Bob",
			want: [][]string{{"U1", "Ann"}, {"U2", "Bob"}},
		},
		{
			name: "trailing newline dropped",
			text: "userId,name\nU1,Ann\n",
			want: [][]string{{"U1", "Ann"}},
		},
		{
			name: "multiple trailing blank lines dropped",
			text: "h\nU1,Ann\n\n  \r\n",
			want: [][]string{{"U1", "Ann"}},
		},
		{
			name: "carriage returns stripped",
			text: "userId,name\r\nU1,Ann\r\nU2,Bob\r\n",
			want: [][]string{{"U1", "Ann"}, {"U2", "Bob"}},
		},
		{
			name: "inner blank line kept",
			text: "h\nU1\n\nU2",
			want: [][]string{{"U1"}, {""}, {"U2"}},
		},
		{
			name: "quotes are not interpreted",
			text: "h\nD1,\"Main St, 5\"",
			want: [][]string{{"D1", "\"Main St", " 5\""}},
		},
		{name: "header only", text: "userId,name", want: [][]string{}},
		{name: "empty", text: "", want: [][]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTable(tt.text))
		})
	}
}

func TestDropHeader(t *testing.T) {
	got := DropHeader([][]string{{"id"}, {"U1"}, {"U2", "x"}, {"", " "}})
	assert.Equal(t, [][]string{{"U1"}, {"U2", "x"}}, got)
	assert.Empty(t, DropHeader(nil))
}

func TestLocationsLookup(t *testing.T) {
	locs := DefaultLocations()
	name, err := locs.Lookup(Users)
	require.NoError(t, err)
	assert.Equal(t, "users.csv", name)

	_, err = locs.Lookup(Dataset("orders"))
	assert.ErrorIs(t, err, ErrUnknownDataset)
}
