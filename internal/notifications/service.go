package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amezghal/careergate/internal/cache"
	"github.com/amezghal/careergate/pkg/logger"
	"github.com/amezghal/careergate/pkg/metrics"
)

const cacheKeyPrefix = "notifications:"

// Backend is the slice of the upstream API the notification service needs.
type Backend interface {
	Notifications(ctx context.Context, token string) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, token, id string) error
	ClearReadNotifications(ctx context.Context, token string) error
}

// Service keeps one notification list per session in the shared cache so
// portal pages read a single consolidated copy instead of re-fetching from
// the backend on every render. Upstream writes are fail-soft: a backend
// hiccup is logged and the local list still reflects the user's action.
type Service struct {
	backend Backend
	store   cache.Store
	ttl     time.Duration
	hub     *Hub
	log     *zap.Logger

	mu     sync.Mutex
	primed map[string]struct{}
}

// NewService constructs a notification service.
func NewService(backend Backend, store cache.Store, ttl time.Duration, hub *Hub) (*Service, error) {
	if backend == nil {
		return nil, errors.New("notifications: backend is required")
	}
	if store == nil {
		return nil, errors.New("notifications: cache store is required")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{
		backend: backend,
		store:   store,
		ttl:     ttl,
		hub:     hub,
		log:     logger.WithModule("notifications"),
		primed:  make(map[string]struct{}),
	}, nil
}

// Prime fetches the current notification list for a fresh session and caches
// it. Fetch failures are tolerated; the session starts with an empty list.
func (s *Service) Prime(ctx context.Context, sessionID, token string) []Notification {
	items, err := s.backend.Notifications(ctx, token)
	if err != nil {
		s.log.Warn("notification fetch failed; starting with empty list",
			zap.String("session_id", sessionID), zap.Error(err))
		items = []Notification{}
	}

	if err := s.save(ctx, sessionID, items); err != nil {
		s.log.Warn("notification cache write failed", zap.Error(err))
	} else {
		s.track(sessionID)
	}
	return items
}

// List returns the session's cached notification list, fetching from the
// backend on a cache miss. A failed fetch reads as an empty list; notifications
// are non-critical and must never block a page.
func (s *Service) List(ctx context.Context, sessionID, token string) []Notification {
	if items, ok := s.load(ctx, sessionID); ok {
		return items
	}
	return s.Prime(ctx, sessionID, token)
}

// MarkRead flips exactly one entry's read flag to true, leaving order and
// every other entry untouched. Marking an already-read entry is a no-op.
func (s *Service) MarkRead(ctx context.Context, sessionID, token, id string) []Notification {
	if err := s.backend.MarkNotificationRead(ctx, token, id); err != nil {
		s.log.Warn("upstream mark-read failed", zap.String("notification_id", id), zap.Error(err))
	}

	items := s.List(ctx, sessionID, token)
	changed := false
	for i := range items {
		if items[i].ID == id && !items[i].Read {
			items[i].Read = true
			changed = true
			break
		}
	}

	if changed {
		if err := s.save(ctx, sessionID, items); err != nil {
			s.log.Warn("notification cache write failed", zap.Error(err))
		}
		s.broadcast(sessionID, Event{Event: "notification.read", NotificationID: id})
	}
	return items
}

// ClearRead removes every entry whose read flag is set, preserving the
// relative order of the remainder. Calling it twice removes nothing new.
func (s *Service) ClearRead(ctx context.Context, sessionID, token string) []Notification {
	if err := s.backend.ClearReadNotifications(ctx, token); err != nil {
		s.log.Warn("upstream clear-read failed", zap.Error(err))
	}

	items := s.List(ctx, sessionID, token)
	remaining := items[:0:0]
	for _, item := range items {
		if !item.Read {
			remaining = append(remaining, item)
		}
	}

	if len(remaining) != len(items) {
		if err := s.save(ctx, sessionID, remaining); err != nil {
			s.log.Warn("notification cache write failed", zap.Error(err))
		}
		s.broadcast(sessionID, Event{Event: "notification.cleared"})
	}
	return remaining
}

// Forget drops the session's cached list, typically on logout.
func (s *Service) Forget(ctx context.Context, sessionID string) {
	if err := s.store.Delete(ctx, cacheKeyPrefix+sessionID); err != nil {
		s.log.Warn("notification cache delete failed", zap.Error(err))
		return
	}
	s.untrack(sessionID)
}

// track and untrack keep the active-session gauge honest: List re-primes a
// session whenever its cache entry expires, so the gauge moves only when a
// session id first appears or is explicitly forgotten.
func (s *Service) track(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.primed[sessionID]; ok {
		return
	}
	s.primed[sessionID] = struct{}{}
	metrics.ActiveSessions.Inc()
}

func (s *Service) untrack(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.primed[sessionID]; !ok {
		return
	}
	delete(s.primed, sessionID)
	metrics.ActiveSessions.Dec()
}

func (s *Service) load(ctx context.Context, sessionID string) ([]Notification, bool) {
	data, ok, err := s.store.Get(ctx, cacheKeyPrefix+sessionID)
	if err != nil {
		s.log.Warn("notification cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var items []Notification
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn("notification cache entry unreadable", zap.Error(err))
		return nil, false
	}
	return items, true
}

func (s *Service) save(ctx context.Context, sessionID string, items []Notification) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("notifications: marshal list: %w", err)
	}
	return s.store.Set(ctx, cacheKeyPrefix+sessionID, data, s.ttl)
}

func (s *Service) broadcast(sessionID string, event Event) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(sessionID, event)
}
