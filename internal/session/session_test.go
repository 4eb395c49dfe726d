package session

import (
	"testing"

	"recycling/internal/core"
	"recycling/internal/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ann = identity.Identity{User: core.User{UserID: "U1", Name: "Ann"}, Role: core.RoleParticipant}

func TestStartAndGet(t *testing.T) {
	s := NewStore(Config{})
	st := s.Start()

	_, err := uuid.Parse(st.ID)
	require.NoError(t, err)
	assert.False(t, st.LoggedIn())
	assert.Equal(t, 1, st.Pager.Current())

	got, ok := s.Get(st.ID)
	require.True(t, ok)
	assert.Equal(t, st.ID, got.ID)

	_, ok = s.Get("nope")
	assert.False(t, ok)
}

func TestLoginLogoutKeepsPage(t *testing.T) {
	s := NewStore(Config{})
	id := s.Start().ID

	st, ok := s.Login(id, ann)
	require.True(t, ok)
	require.True(t, st.LoggedIn())
	assert.Equal(t, "U1", st.Identity.UserID())

	s.NextPage(id)
	s.NextPage(id)
	st, _ = s.Logout(id)
	assert.False(t, st.LoggedIn())
	assert.Equal(t, 3, st.Pager.Current())

	st, _ = s.Login(id, ann)
	assert.Equal(t, 3, st.Pager.Current(), "page carries over by default")
}

func TestResetPageOnLogin(t *testing.T) {
	s := NewStore(Config{ResetPageOnLogin: true})
	id := s.Start().ID
	s.NextPage(id)

	st, _ := s.Login(id, ann)
	assert.Equal(t, 1, st.Pager.Current())
}

func TestPrevClamps(t *testing.T) {
	s := NewStore(Config{})
	id := s.Start().ID
	st, ok := s.PrevPage(id)
	require.True(t, ok)
	assert.Equal(t, 1, st.Pager.Current())
}

func TestUnknownSession(t *testing.T) {
	s := NewStore(Config{})
	_, ok := s.Login("missing", ann)
	assert.False(t, ok)
	_, ok = s.NextPage("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewStore(Config{MaxSessions: 10})
	a := s.Start().ID
	b := s.Start().ID
	s.Login(a, ann)
	s.NextPage(a)

	st, _ := s.Get(b)
	assert.False(t, st.LoggedIn())
	assert.Equal(t, 1, st.Pager.Current())

	s.Delete(a)
	_, ok := s.Get(a)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}
