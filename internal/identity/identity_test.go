package identity

import (
	"testing"

	"recycling/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var users = []core.User{
	{UserID: "U1", Name: "Ann", RoleName: "participant"},
	{UserID: "U9", Name: "Oz", RoleName: "dropbox"},
	{UserID: "R1", Name: "Rita", RoleName: "recycler"},
	{UserID: "X1", Name: "Xan", RoleName: "admin"},
	{UserID: "U1", Name: "Shadow", RoleName: "recycler"},
	{UserID: "", Name: "Blank"},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		id       string
		wantName string
		wantRole core.Role
	}{
		{"U1", "Ann", core.RoleParticipant},
		{"U9", "Oz", core.RoleDropboxOwner},
		{"R1", "Rita", core.RoleRecycler},
		{"X1", "Xan", core.RoleUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := Resolve(Credentials{UserID: tt.id}, users)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.User.Name)
			assert.Equal(t, tt.wantRole, got.Role)
			assert.Equal(t, tt.id, got.UserID())
		})
	}
}

func TestResolveIgnoresPassword(t *testing.T) {
	a, errA := Resolve(Credentials{UserID: "U9", Password: "secret"}, users)
	b, errB := Resolve(Credentials{UserID: "U9", Password: "something else"}, users)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestResolveRejects(t *testing.T) {
	for _, id := range []string{"U404", "u1", " U1", "", "  "} {
		_, err := Resolve(Credentials{UserID: id, Password: "pw"}, users)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "id %q", id)
	}
	_, err := Resolve(Credentials{UserID: "U1"}, nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
