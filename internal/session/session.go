// Package session keeps per-visitor dashboard state: who is signed in
// and which page they are on.
package session

import (
	"time"

	"recycling/internal/cache"
	"recycling/internal/identity"
	"recycling/internal/paging"

	"github.com/google/uuid"
)

const (
	DefaultTTL         = 12 * time.Hour
	DefaultMaxSessions = 1000
)

// State is one visitor's session. It is passed and stored by value.
type State struct {
	ID        string
	Identity  *identity.Identity
	Pager     paging.Pager
	CreatedAt time.Time
}

func (s State) LoggedIn() bool {
	return s.Identity != nil
}

type Config struct {
	TTL         time.Duration
	MaxSessions int
	// ResetPageOnLogin starts each login on page 1. By default the page
	// carries over from the previous login in the same session.
	ResetPageOnLogin bool
}

// Store holds sessions in an LRU cache with a sliding ttl.
type Store struct {
	states *cache.LRUCache[State]
	cfg    Config
	now    func() time.Time
}

func NewStore(cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	return &Store{
		states: cache.NewLRUCache[State](cfg.MaxSessions, cfg.TTL),
		cfg:    cfg,
		now:    time.Now,
	}
}

// Cleaner exposes the backing cache for periodic expiry.
func (s *Store) Cleaner() cache.Cleaner {
	return s.states
}

// Start creates a logged-out session on page 1.
func (s *Store) Start() State {
	st := State{ID: uuid.NewString(), Pager: paging.NewPager(), CreatedAt: s.now()}
	s.states.Set(st.ID, st)
	return st
}

// Get returns the live session for id and extends its ttl.
func (s *Store) Get(id string) (State, bool) {
	return s.states.Update(id, func(st State) State { return st })
}

// Login attaches id to the session.
func (s *Store) Login(sessionID string, id identity.Identity) (State, bool) {
	return s.states.Update(sessionID, func(st State) State {
		st.Identity = &id
		if s.cfg.ResetPageOnLogin {
			st.Pager = st.Pager.Reset()
		}
		return st
	})
}

// Logout clears the identity and keeps the page number.
func (s *Store) Logout(sessionID string) (State, bool) {
	return s.states.Update(sessionID, func(st State) State {
		st.Identity = nil
		return st
	})
}

func (s *Store) NextPage(sessionID string) (State, bool) {
	return s.states.Update(sessionID, func(st State) State {
		st.Pager = st.Pager.Next()
		return st
	})
}

func (s *Store) PrevPage(sessionID string) (State, bool) {
	return s.states.Update(sessionID, func(st State) State {
		st.Pager = st.Pager.Prev()
		return st
	})
}

// Delete forgets the session entirely.
func (s *Store) Delete(sessionID string) {
	s.states.Delete(sessionID)
}

func (s *Store) Len() int {
	return s.states.Size()
}
