package filterstate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"botdash/internal/navigation"
	"github.com/sirupsen/logrus"
)

// Sequencer hands out increasing request IDs. Only the latest ID is
// current, so a response that resolves after a newer request was issued
// can be recognised and dropped.
type Sequencer struct {
	last atomic.Uint64
}

func (s *Sequencer) Next() uint64 { return s.last.Add(1) }

func (s *Sequencer) IsCurrent(id uint64) bool { return s.last.Load() == id }

// View is one rendered page.
type View struct {
	Query navigation.Query
	Links navigation.Links
	Rows  any
	Err   error
}

// Fetcher loads the page at q. It must not render anything itself.
type Fetcher func(ctx context.Context, q navigation.Query) (View, error)

// Session drives one list screen: it owns the current location, issues
// one fetch per navigation and renders only the newest response.
type Session struct {
	fetch    Fetcher
	render   func(View)
	debounce *Debouncer
	log      *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc
	seq    Sequencer
	wg     sync.WaitGroup

	mu       sync.Mutex
	renderMu sync.Mutex
	current  navigation.Query
	links    navigation.Links
	closed   bool
}

func NewSession(start navigation.Query, fetch Fetcher, render func(View), log *logrus.Entry) *Session {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		fetch:    fetch,
		render:   render,
		debounce: NewDebouncer(DefaultDebounce),
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		current:  start,
	}
}

// SetDebounce replaces the text-edit delay. Call before the first Search.
func (s *Session) SetDebounce(d time.Duration) {
	s.debounce = NewDebouncer(d)
}

// Current returns the location of the most recent navigation.
func (s *Session) Current() navigation.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Links returns the links of the last rendered page.
func (s *Session) Links() navigation.Links {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.links
}

// Load fetches the current location.
func (s *Session) Load() {
	s.Go(s.Current())
}

// Next follows the next link. It reports false when there is none.
func (s *Session) Next() bool {
	href := s.Links().Next
	if href == "" {
		return false
	}
	s.Go(navigation.ParseHref(href))
	return true
}

// Prev follows the previous link. It reports false when there is none.
func (s *Session) Prev() bool {
	href := s.Links().Prev
	if href == "" {
		return false
	}
	s.Go(navigation.ParseHref(href))
	return true
}

// Filter applies filter edits immediately and restarts from page one.
func (s *Session) Filter(ms ...Mutation) {
	s.Go(Apply(s.Current(), ms...))
}

// Search debounces a free-text edit before applying it.
func (s *Session) Search(key, text string) {
	s.debounce.Trigger(func() {
		s.Filter(SetText(key, text))
	})
}

// Reset clears all filters.
func (s *Session) Reset() {
	s.Go(Reset(s.Current()))
}

// Go navigates to q. The links of the previous page are dropped at once,
// so Next and Prev offer nothing until the new page has rendered.
func (s *Session) Go(q navigation.Query) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	id := s.seq.Next()
	s.current = q
	s.links = navigation.Links{}
	s.wg.Add(1)
	s.mu.Unlock()

	entry := s.log.WithFields(logrus.Fields{
		"request": id,
		"href":    q.Href(),
		"state":   navigation.StateOf(q).String(),
	})
	entry.Debug("fetching page")

	go func() {
		defer s.wg.Done()
		view, err := s.fetch(s.ctx, q)

		view.Query = q
		view.Err = err
		if err != nil {
			view.Links = navigation.Links{}
		}

		s.renderMu.Lock()
		defer s.renderMu.Unlock()
		s.mu.Lock()
		if !s.seq.IsCurrent(id) {
			s.mu.Unlock()
			entry.Debug("discarding stale response")
			return
		}
		s.links = view.Links
		s.mu.Unlock()
		s.render(view)
	}()
}

// Wait blocks until every issued fetch has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels any pending text edit and in-flight fetches. Navigation
// after Close is ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.debounce.Stop()
	s.cancel()
	s.wg.Wait()
}
