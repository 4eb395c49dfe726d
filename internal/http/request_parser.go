package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"recycling/internal/identity"
)

const maxBodyBytes = 1 << 16

var errMalformedBody = errors.New("malformed request body")

type credentialsRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// parseCredentials reads userId and password from a JSON body or a form.
func parseCredentials(w http.ResponseWriter, r *http.Request) (identity.Credentials, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isJSON(r) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return identity.Credentials{}, errMalformedBody
		}
		return identity.Credentials{UserID: sanitizeInput(req.UserID), Password: req.Password}, nil
	}

	if err := r.ParseForm(); err != nil {
		return identity.Credentials{}, errMalformedBody
	}
	return identity.Credentials{
		UserID:   sanitizeInput(r.PostForm.Get("userId")),
		Password: r.PostForm.Get("password"),
	}, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// sanitizeInput drops control characters. Spaces are kept so the id is
// matched exactly as submitted.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
