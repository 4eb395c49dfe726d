package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recycling/internal/sources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/dropboxes.csv":
			_, _ = w.Write([]byte("dropboxId,ownerUserId,location,description\r\nD1,U9,Main St,Blue bin\r\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/data", nil, srv.Client())

	rows, err := c.Rows(context.Background(), sources.Dropboxes)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"D1", "U9", "Main St", "Blue bin"}}, rows)

	_, err = c.Rows(context.Background(), sources.Users)
	assert.ErrorIs(t, err, sources.ErrUnexpectedStatus)
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil, nil).Rows(context.Background(), sources.Transactions)
	assert.Error(t, err)
}

func TestClientRejectsOversizedBody(t *testing.T) {
	body := "transactionId,timestamp,dropboxId,userId,bottleCount\n" +
		strings.Repeat("T1,2024-01-15,D1,U1,12345\n", 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, srv.Client())
	c.maxBytes = int64(len(body)) - 10

	rows, err := c.Rows(context.Background(), sources.Transactions)
	assert.ErrorIs(t, err, sources.ErrTooLarge)
	assert.Nil(t, rows)

	c.maxBytes = int64(len(body))
	rows, err = c.Rows(context.Background(), sources.Transactions)
	require.NoError(t, err)
	assert.Len(t, rows, 8)
}
