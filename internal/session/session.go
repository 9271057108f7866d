// Package session keeps games in progress in memory.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

type Session struct {
	Id        uuid.UUID
	PlayerId  *int64
	Username  *string
	StartedAt time.Time

	mu       sync.Mutex
	board    *mines.Board
	endedAt  *time.Time
	recorded bool
	touched  time.Time
}

// Do runs fn with exclusive access to the board. The end time is stamped the
// first time fn leaves the game over.
func (s *Session) Do(fn func(b *mines.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.board)
	now := time.Now().UTC()
	s.touched = now
	if s.board.Over() && s.endedAt == nil {
		s.endedAt = &now
	}
}

func (s *Session) EndedAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

// MarkRecorded reports whether the caller is the first to claim the finished
// game for persistence.
func (s *Session) MarkRecorded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endedAt == nil || s.recorded {
		return false
	}
	s.recorded = true
	return true
}

func (s *Session) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

func (s *Store) Create(board *mines.Board, playerId *int64, username *string) *Session {
	now := time.Now().UTC()
	session := &Session{
		Id:        uuid.New(),
		PlayerId:  playerId,
		Username:  username,
		StartedAt: now,
		board:     board,
		touched:   now,
	}
	s.mu.Lock()
	s.sessions[session.Id] = session
	s.mu.Unlock()
	return session
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Lookup parses a textual session id and fetches the session.
func (s *Store) Lookup(id string) (*Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.Get(parsed)
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions not touched for longer than ttl and returns how many
// were dropped.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := time.Now().UTC().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, session := range s.sessions {
		if session.lastTouched().Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
