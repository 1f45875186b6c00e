package session

import (
	"errors"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/NethermindEth/amanti/pkg/amanti/lifecycle"
	"github.com/NethermindEth/amanti/pkg/amanti/metrics"
)

const (
	DefaultCacheSize = 10000
	DefaultTTL       = 2 * time.Hour
)

type Store struct {
	sessions *expirable.LRU[string, *Session]

	client   NoteClient
	renderer CardRenderer
	pool     pond.ResultPool[string]
}

type StoreConfig struct {
	Client   NoteClient
	Renderer CardRenderer
	Pool     pond.ResultPool[string]

	CacheSize int
	TTL       time.Duration
}

func NewStore(config *StoreConfig) (*Store, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}
	if config.Client == nil {
		return nil, errors.New("note client is nil")
	}
	if config.Renderer == nil {
		return nil, errors.New("card renderer is nil")
	}
	if config.Pool == nil {
		return nil, errors.New("worker pool is nil")
	}

	size := config.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	onEvict := func(string, *Session) {
		metrics.ActiveSessions.Dec()
	}

	return &Store{
		sessions: expirable.NewLRU[string, *Session](size, onEvict, ttl),
		client:   config.Client,
		renderer: config.Renderer,
		pool:     config.Pool,
	}, nil
}

// New always starts a blank session, which is what a page reload means.
func (s *Store) New() *Session {
	session := &Session{
		id:       uuid.NewString(),
		client:   s.client,
		renderer: s.renderer,
		pool:     s.pool,
		machine:  lifecycle.NewMachine(),
	}

	s.sessions.Add(session.id, session)
	metrics.ActiveSessions.Inc()

	return session
}

func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	return s.sessions.Get(id)
}

func (s *Store) Remove(id string) {
	s.sessions.Remove(id)
}

func (s *Store) Len() int {
	return s.sessions.Len()
}
