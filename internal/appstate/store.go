// Package appstate implements the per-session application state container
// backing every authenticated dashboard surface: identity mirror, trends with
// a derived filtered view, bookmarks, generation history, analyses, and the
// transient notification queue.
package appstate

import (
	"sort"
	"sync"
	"time"

	"trenai/internal/models"

	"github.com/google/uuid"
)

// Store is the single source of truth for one user's session state. Every
// mutation holds the lock across the full read-modify-write of any
// (primary, derived) pair, so a reader can never observe trends updated with
// a stale filtered view.
type Store struct {
	mu sync.Mutex

	userID        uint
	identity      *models.Identity
	authenticated bool

	trends         []models.Trend
	filtered       []models.Trend
	filter         models.TrendFilter
	bookmarks      map[string]struct{}
	history        []models.GeneratedContent
	analyses       []models.UserAnalysis
	generating     bool
	upgradePrompt  bool

	notifications []Notification
	timers        map[string]*time.Timer
	notifTTL      time.Duration
	emit          func(ToastEvent)
}

// NewStore builds an empty store. notifTTL is the auto-expiry delay for
// toasts; emit, when non-nil, receives queue change events and is always
// called outside the store lock.
func NewStore(userID uint, notifTTL time.Duration, emit func(ToastEvent)) *Store {
	return &Store{
		userID:    userID,
		filter:    models.NeutralTrendFilter(),
		bookmarks: make(map[string]struct{}),
		timers:    make(map[string]*time.Timer),
		notifTTL:  notifTTL,
		emit:      emit,
	}
}

// UserID returns the owner of this store.
func (s *Store) UserID() uint {
	return s.userID
}

// SetIdentity installs or clears the session identity. A non-nil identity
// marks the session authenticated; nil marks it unauthenticated. Token
// handling stays with the caller.
func (s *Store) SetIdentity(identity *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if identity == nil {
		s.identity = nil
		s.authenticated = false
		return
	}
	cp := *identity
	s.identity = &cp
	s.authenticated = true
}

// Identity returns the current identity and whether the session is
// authenticated.
func (s *Store) Identity() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, s.authenticated
}

// LoadTrends replaces the trend collection. The stored filter resets to
// neutral so a stale filter never silently narrows fresh data, and the
// filtered view becomes the full list in the same critical section.
func (s *Store) LoadTrends(trends []models.Trend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trends = append([]models.Trend(nil), trends...)
	s.filter = models.NeutralTrendFilter()
	s.filtered = FilterTrends(s.trends, s.filter)
}

// ApplyFilter stores the criteria and recomputes the filtered view.
// Applying the same criteria twice is a no-op beyond the recomputation.
func (s *Store) ApplyFilter(f models.TrendFilter) []models.Trend {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	s.filtered = FilterTrends(s.trends, f)
	return append([]models.Trend(nil), s.filtered...)
}

// Trends returns the full in-session collection.
func (s *Store) Trends() []models.Trend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Trend(nil), s.trends...)
}

// FilteredTrends returns the derived view under the current criteria.
func (s *Store) FilteredTrends() []models.Trend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Trend(nil), s.filtered...)
}

// Filter returns the active criteria.
func (s *Store) Filter() models.TrendFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// ToggleBookmark flips membership for the trend id and returns the new
// state, so callers can render feedback without a second read.
func (s *Store) ToggleBookmark(trendID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookmarks[trendID]; ok {
		delete(s.bookmarks, trendID)
		return false
	}
	s.bookmarks[trendID] = struct{}{}
	return true
}

// Bookmarked reports membership for a trend id.
func (s *Store) Bookmarked(trendID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.bookmarks[trendID]
	return ok
}

// Bookmarks returns the bookmarked trend ids, sorted for stable output.
func (s *Store) Bookmarks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.bookmarks))
	for id := range s.bookmarks {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// RecordGeneratedContent prepends to the history. Newest-first ordering is a
// hard invariant.
func (s *Store) RecordGeneratedContent(content models.GeneratedContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]models.GeneratedContent{content}, s.history...)
}

// History returns the generation history, newest first.
func (s *Store) History() []models.GeneratedContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.GeneratedContent(nil), s.history...)
}

// RecordAnalysis prepends a profile analysis to the session history.
func (s *Store) RecordAnalysis(analysis models.UserAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = append([]models.UserAnalysis{analysis}, s.analyses...)
}

// Analyses returns the analysis history, newest first.
func (s *Store) Analyses() []models.UserAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.UserAnalysis(nil), s.analyses...)
}

// SetGenerating flips the in-flight generation flag. The store does not
// deduplicate concurrent generation requests; surfaces use this flag to
// disable duplicate submissions.
func (s *Store) SetGenerating(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = v
}

// Generating reports whether a generation request is outstanding.
func (s *Store) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// SetUpgradePrompt flips the plan-upgrade modal flag.
func (s *Store) SetUpgradePrompt(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upgradePrompt = v
}

// UpgradePrompt reports whether the plan-upgrade modal should show.
func (s *Store) UpgradePrompt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upgradePrompt
}

// EnqueueNotification appends a toast with a fresh id and arms its expiry
// timer. The returned id can be used for manual dismissal.
func (s *Store) EnqueueNotification(kind NotificationKind, message string) string {
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	if s.notifTTL > 0 {
		id := n.ID
		s.timers[id] = time.AfterFunc(s.notifTTL, func() { s.expire(id) })
	}
	s.mu.Unlock()

	s.emitEvent(ToastEvent{Type: EventEnqueued, UserID: s.userID, Notification: &n})
	return n.ID
}

// DismissNotification removes a toast by id and cancels its expiry timer.
// Dismissing an unknown or already-expired id is a no-op.
func (s *Store) DismissNotification(id string) {
	s.mu.Lock()
	removed := s.removeLocked(id)
	s.mu.Unlock()

	if removed {
		s.emitEvent(ToastEvent{Type: EventRemoved, UserID: s.userID, ID: id})
	}
}

// Notifications returns the active queue in enqueue order.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.notifications...)
}

// Close cancels all outstanding expiry timers. Used when a session's store
// is discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.notifications = nil
}

// expire is the timer path of the notification state machine. The timer may
// race a manual dismissal; removeLocked makes the loser a no-op.
func (s *Store) expire(id string) {
	s.mu.Lock()
	removed := s.removeLocked(id)
	s.mu.Unlock()

	if removed {
		s.emitEvent(ToastEvent{Type: EventRemoved, UserID: s.userID, ID: id})
	}
}

func (s *Store) removeLocked(id string) bool {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) emitEvent(ev ToastEvent) {
	if s.emit != nil {
		s.emit(ev)
	}
}
