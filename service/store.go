package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/AnTengye/tenantdesk/config"
	"github.com/google/uuid"
)

// WidgetStore keeps one upload widget per browser session in memory
type WidgetStore struct {
	widgets     map[string]*UploadWidget
	mu          sync.RWMutex
	maxSessions int // Maximum widgets to keep, 0 = unlimited
	uploader    Uploader
	timeout     time.Duration
	mounted     uint64
	uploads     sync.WaitGroup
}

func NewWidgetStore(uploader Uploader, sessionCfg *config.SessionConfig, backendCfg *config.BackendConfig) *WidgetStore {
	maxSessions := sessionCfg.MaxSessions
	if maxSessions < 0 {
		maxSessions = 0
	}
	slog.Info("widget store initialized", "max_sessions", maxSessions)
	return &WidgetStore{
		widgets:     make(map[string]*UploadWidget),
		maxSessions: maxSessions,
		uploader:    uploader,
		timeout:     backendCfg.Timeout(),
	}
}

// Get returns the widget for id, or nil
func (s *WidgetStore) Get(id string) *UploadWidget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.widgets[id]
}

// GetOrCreate returns the widget for id, mounting a fresh one under a new
// id when id is unknown. Callers must use the returned widget's ID.
func (s *WidgetStore) GetOrCreate(id string) *UploadWidget {
	if w := s.Get(id); w != nil {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := NewUploadWidget(uuid.New().String(), s.uploader, s.timeout)
	s.mounted++
	w.seq = s.mounted
	w.group = &s.uploads
	s.widgets[w.ID()] = w
	s.cleanupIfNeeded()
	return w
}

// Count returns the number of widgets in the store
func (s *WidgetStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.widgets)
}

// Wait blocks until every upload started through the store has finished,
// including those on widgets evicted since
func (s *WidgetStore) Wait() {
	s.uploads.Wait()
}

// cleanupIfNeeded drops the oldest widgets once the store exceeds maxSessions.
// Must be called with lock held. An evicted widget's upload still finishes;
// its result is just no longer reachable.
func (s *WidgetStore) cleanupIfNeeded() {
	if s.maxSessions <= 0 || len(s.widgets) <= s.maxSessions {
		return
	}

	widgets := make([]*UploadWidget, 0, len(s.widgets))
	for _, w := range s.widgets {
		widgets = append(widgets, w)
	}
	sort.Slice(widgets, func(i, j int) bool {
		return widgets[i].seq < widgets[j].seq
	})

	removeCount := len(widgets) - s.maxSessions
	for i := 0; i < removeCount; i++ {
		slog.Info("evicting upload widget",
			"session_id", widgets[i].ID(),
			"created_at", widgets[i].CreatedAt(),
		)
		delete(s.widgets, widgets[i].ID())
	}
}
