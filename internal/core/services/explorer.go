package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driven"
	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// Ensure Explorer implements the interface.
var _ driving.Explorer = (*Explorer)(nil)

var (
	errNoSearcher = errors.New("search backend not configured")
	errNoFetcher  = errors.New("detail backend not configured")
)

// Explorer is the view-state controller. It owns a ResultStore, a
// SelectionController and the viewport derived by a ViewportPolicy, and
// applies every transition under one lock so no reader observes a
// half-applied state.
//
// Collaborator calls run on their own goroutines. Each is stamped when it
// starts and its completion is dropped unless the stamp is still current.
type Explorer struct {
	searcher driven.ProjectSearcher
	fetcher  driven.ProjectDetailsFetcher
	policy   ViewportPolicy

	mu        sync.Mutex
	store     *ResultStore
	selection *SelectionController
	viewport  domain.Viewport
	revision  uint64

	subs    map[int]chan domain.Snapshot
	nextSub int

	inflight sync.WaitGroup
}

// NewExplorer creates an explorer with an empty result set and the
// policy's default viewport.
func NewExplorer(
	searcher driven.ProjectSearcher,
	fetcher driven.ProjectDetailsFetcher,
	policy ViewportPolicy,
) *Explorer {
	store := NewResultStore()
	return &Explorer{
		searcher:  searcher,
		fetcher:   fetcher,
		policy:    policy,
		store:     store,
		selection: NewSelectionController(),
		viewport:  policy.Compute(store.Results()),
		subs:      make(map[int]chan domain.Snapshot),
	}
}

// SubmitQuery starts a search for text. It returns once the search is
// stamped; the result is committed later.
func (e *Explorer) SubmitQuery(ctx context.Context, text string) error {
	e.mu.Lock()
	ticket, err := e.store.Begin(text)
	if err != nil {
		e.mu.Unlock()
		logger.Debug("Rejected query %q: %v", text, err)
		return err
	}
	logger.Debug("Search #%d started: %q", ticket.Seq, ticket.Query)
	e.commitLocked()
	e.mu.Unlock()

	e.inflight.Add(1)
	go e.runSearch(ctx, ticket)
	return nil
}

// Select starts a detail fetch for id. Re-selecting the loaded project
// does nothing.
func (e *Explorer) Select(ctx context.Context, id int64) error {
	e.mu.Lock()
	ticket, started, err := e.selection.Select(id, e.store.Results())
	if err != nil {
		e.mu.Unlock()
		logger.Debug("Rejected selection: %v", err)
		return err
	}
	if !started {
		e.mu.Unlock()
		logger.Debug("Project %d already loaded", id)
		return nil
	}
	logger.Debug("Detail fetch #%d started for project %d", ticket.Seq, ticket.ID)
	e.commitLocked()
	e.mu.Unlock()

	e.inflight.Add(1)
	go e.runFetch(ctx, ticket)
	return nil
}

// Snapshot returns the current state.
func (e *Explorer) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe returns a channel that receives the latest snapshot after each
// committed transition. Slow readers only ever see the newest snapshot.
// The returned function ends the subscription and closes the channel.
func (e *Explorer) Subscribe() (<-chan domain.Snapshot, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	ch := make(chan domain.Snapshot, 1)
	e.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subs, id)
			close(ch)
		})
	}
}

// Wait blocks until every started search and detail fetch has returned.
func (e *Explorer) Wait() {
	e.inflight.Wait()
}

func (e *Explorer) runSearch(ctx context.Context, ticket SearchTicket) {
	defer e.inflight.Done()

	var (
		results []domain.ProjectSummary
		err     error
	)
	if e.searcher == nil {
		err = errNoSearcher
	} else {
		results, err = e.searcher.SearchProjects(ctx, ticket.Query)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		if !e.store.Fail(ticket, err) {
			logger.Debug("Search #%d superseded, discarding failure", ticket.Seq)
			return
		}
		logger.Warn("Search #%d failed: %v", ticket.Seq, err)
		e.commitLocked()
		return
	}

	if !e.store.Commit(ticket, results) {
		logger.Debug("Search #%d superseded, discarding %d results", ticket.Seq, len(results))
		return
	}

	// A new result set always clears the selection, even if the selected
	// project appears again.
	e.selection.Reset()
	e.viewport = e.policy.Compute(e.store.Results())
	logger.Debug("Search #%d committed %d results, zoom %d", ticket.Seq, e.store.Results().Len(), e.viewport.Zoom)
	e.commitLocked()
}

func (e *Explorer) runFetch(ctx context.Context, ticket DetailTicket) {
	defer e.inflight.Done()

	var (
		details *domain.ProjectDetails
		err     error
	)
	if e.fetcher == nil {
		err = errNoFetcher
	} else {
		details, err = e.fetcher.FetchProjectDetails(ctx, ticket.ID)
		if err == nil && details == nil {
			err = fmt.Errorf("project %d: %w", ticket.ID, domain.ErrNotFound)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		if !e.selection.Reject(ticket, err) {
			logger.Debug("Detail fetch #%d superseded, discarding failure", ticket.Seq)
			return
		}
		logger.Warn("Detail fetch for project %d failed: %v", ticket.ID, err)
		e.commitLocked()
		return
	}

	if !e.selection.Resolve(ticket, *details) {
		logger.Debug("Detail fetch #%d superseded, discarding details", ticket.Seq)
		return
	}
	logger.Debug("Detail fetch #%d committed for project %d", ticket.Seq, ticket.ID)
	e.commitLocked()
}

// commitLocked bumps the revision and publishes the new snapshot.
// Caller must hold e.mu.
func (e *Explorer) commitLocked() {
	e.revision++
	snap := e.snapshotLocked()
	for _, ch := range e.subs {
		publish(ch, snap)
	}
}

// snapshotLocked assembles a snapshot. Caller must hold e.mu.
func (e *Explorer) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Revision:     e.revision,
		Query:        e.store.Query(),
		Results:      e.store.Results(),
		SearchStatus: e.store.Status(),
		SearchErr:    e.store.Err(),
		Selection:    e.selection.Selection(),
		Viewport:     e.viewport,
	}
}

// publish replaces any unread snapshot in ch with snap. Only commitLocked
// sends, so the second send always has room.
func publish(ch chan domain.Snapshot, snap domain.Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- snap
}
