// Package session keeps per-browser wallet and dialog state in memory.
package session

import (
	"sync"
	"time"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Session is the state of one dashboard visitor. All methods are safe for
// concurrent use.
type Session struct {
	ID string

	mu      sync.Mutex
	address *common.Address
	details map[string]*entity.PoolDetailState
}

func newSession() *Session {
	return &Session{ID: uuid.NewString(), details: make(map[string]*entity.PoolDetailState)}
}

// Wallet reports the connection state.
func (s *Session) Wallet() port.WalletState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.address == nil {
		return port.WalletState{}
	}
	return port.WalletState{Connected: true, Address: s.address.Hex()}
}

// Connect marks the session as connected to addr.
func (s *Session) Connect(addr common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = &addr
}

// Disconnect forgets the wallet address.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = nil
}

// WithDetail runs fn on the dialog state of the named pool, creating a closed
// dialog on first use.
func (s *Session) WithDetail(pool entity.PoolSummary, fn func(*entity.PoolDetailState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.details[pool.Name]
	if !ok {
		st = entity.NewPoolDetailState(pool.Encrypted)
		s.details[pool.Name] = st
	}
	return fn(st)
}

// Store holds sessions in a go-cache with sliding expiration.
type Store struct {
	cache   *cache.Cache
	metrics *metrics.Metrics
}

// NewStore creates a store whose idle sessions expire after ttl.
func NewStore(ttl, cleanupInterval time.Duration, m *metrics.Metrics) *Store {
	s := &Store{cache: cache.New(ttl, cleanupInterval), metrics: m}
	s.cache.OnEvicted(func(string, interface{}) {
		s.metrics.SetActiveSessions(s.cache.ItemCount())
	})
	return s
}

// Create starts a new session with a random id.
func (s *Store) Create() *Session {
	sess := newSession()
	s.cache.Set(sess.ID, sess, cache.DefaultExpiration)
	s.metrics.SetActiveSessions(s.cache.ItemCount())
	return sess
}

// Get returns a live session and extends its lifetime.
func (s *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess := v.(*Session)
	s.cache.Set(id, sess, cache.DefaultExpiration)
	return sess, true
}

// GetOrCreate returns the session for id, or a fresh one when id is unknown.
// created reports whether a new session was started.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}
	return s.Create(), true
}

// Delete ends a session.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of unexpired sessions.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
