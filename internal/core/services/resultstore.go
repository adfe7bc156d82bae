package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// SearchTicket stamps a submitted query. Only the ticket carrying the latest
// sequence number may commit.
type SearchTicket struct {
	Seq   uint64
	Query string
}

// ResultStore holds the result set returned by the last successful search.
//
// ResultStore is not safe for concurrent use; the Explorer serialises access.
type ResultStore struct {
	seq     uint64
	query   string
	results domain.ResultSet
	status  domain.SearchStatus
	err     error
}

// NewResultStore creates an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: domain.ResultSet{},
		status:  domain.SearchReady,
	}
}

// Begin validates the query and stamps a new search, clearing any
// previous failure.
// Returns domain.ErrValidation for an empty or whitespace-only query,
// leaving the store untouched.
func (s *ResultStore) Begin(text string) (SearchTicket, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return SearchTicket{}, domain.ErrValidation
	}

	s.seq++
	s.query = query
	s.status = domain.SearchSearching
	s.err = nil

	return SearchTicket{Seq: s.seq, Query: query}, nil
}

// IsCurrent reports whether t is the most recently issued ticket.
func (s *ResultStore) IsCurrent(t SearchTicket) bool {
	return t.Seq != 0 && t.Seq == s.seq
}

// Commit replaces the result set with results if t is current.
// Returns false, with no change, for a stale ticket.
func (s *ResultStore) Commit(t SearchTicket, results []domain.ProjectSummary) bool {
	if !s.IsCurrent(t) {
		return false
	}

	s.results = uniqueByID(results)
	s.status = domain.SearchReady
	s.err = nil
	return true
}

// Fail records a search failure if t is current. The previous results stay.
// Returns false, with no change, for a stale ticket.
func (s *ResultStore) Fail(t SearchTicket, err error) bool {
	if !s.IsCurrent(t) {
		return false
	}

	s.status = domain.SearchFailed
	s.err = fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	return true
}

// Results returns the current result set. Callers must not modify it.
func (s *ResultStore) Results() domain.ResultSet {
	return s.results
}

// Status returns the store status.
func (s *ResultStore) Status() domain.SearchStatus {
	return s.status
}

// Err returns the last search failure, if the store is in SearchFailed.
func (s *ResultStore) Err() error {
	return s.err
}

// Query returns the most recently submitted query.
func (s *ResultStore) Query() string {
	return s.query
}

// uniqueByID copies results, keeping the first summary for each id.
func uniqueByID(results []domain.ProjectSummary) domain.ResultSet {
	out := make(domain.ResultSet, 0, len(results))
	seen := make(map[int64]struct{}, len(results))
	for _, p := range results {
		if _, ok := seen[p.ID]; ok {
			logger.Debug("Dropping duplicate project id %d from results", p.ID)
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
