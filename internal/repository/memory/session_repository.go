package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"ivy-crm-be/pkg/store"
)

// SessionRepository keeps conversation sessions in-process. Sessions are
// advisory continuity state, so losing them on restart is acceptable; the
// engine falls back to stateless routing when a session is missing.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
