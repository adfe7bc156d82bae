package driving

import (
	"context"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// Explorer keeps search results, selection and map viewport consistent
// across asynchronous searches and detail fetches.
//
// Commands return immediately. Their effect is observed through Snapshot
// and Subscribe once the collaborator call resolves.
type Explorer interface {
	// SubmitQuery starts a search. Returns domain.ErrValidation for an
	// empty or whitespace-only query, in which case nothing changes.
	SubmitQuery(ctx context.Context, text string) error

	// Select starts a detail fetch for a project in the current results.
	// Returns domain.ErrUnknownProject if id is not in the result set.
	Select(ctx context.Context, id int64) error

	// Snapshot returns the current state.
	Snapshot() domain.Snapshot

	// Subscribe returns a channel receiving the latest snapshot after each
	// committed transition, and a function that ends the subscription.
	Subscribe() (<-chan domain.Snapshot, func())
}

// ViewportFitter derives the map region framing a result set.
type ViewportFitter interface {
	// Compute returns the viewport for results. Pure: same input, same output.
	Compute(results domain.ResultSet) domain.Viewport
}
