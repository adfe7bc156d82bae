package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

func seededProjectStore(t *testing.T) *ProjectStore {
	t.Helper()
	store := NewProjectStore()
	require.NoError(t, store.Upsert(context.Background(), DemoProjects()))
	return store
}

func ids(summaries []domain.ProjectSummary) []int64 {
	out := make([]int64, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.ID)
	}
	return out
}

func TestProjectStore_SearchProjects(t *testing.T) {
	store := seededProjectStore(t)

	tests := []struct {
		name     string
		query    string
		expected []int64
	}{
		{"villas in whitefield", "villas in Whitefield", []int64{7, 21}},
		{"by promoter", "projects by Prestige", []int64{7}},
		{"stop words only matches everything", "show me projects", []int64{3, 5, 7, 11, 12, 14, 18, 21}},
		{"no match", "Mysuru", []int64{}},
		{"all terms required", "sobha hebbal", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.SearchProjects(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(results))
		})
	}
}

func TestProjectStore_SearchProjects_FiltersIneligible(t *testing.T) {
	store := NewProjectStore()
	ctx := context.Background()

	eligible := DemoProjects()[0]
	litigated := DemoProjects()[1]
	litigated.LandUnderLitigation = "YES"
	unlocated := DemoProjects()[2]
	unlocated.HasLocation = false

	require.NoError(t, store.Upsert(ctx, []domain.Project{eligible, litigated, unlocated}))

	results, err := store.SearchProjects(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []int64{eligible.ID}, ids(results))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestProjectStore_SearchProjects_Limit(t *testing.T) {
	store := seededProjectStore(t)
	store.limit = 2

	results, err := store.SearchProjects(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, ids(results))
}

func TestProjectStore_FetchProjectDetails(t *testing.T) {
	store := seededProjectStore(t)

	details, err := store.FetchProjectDetails(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Prestige Lakeside Habitat Villas", details.ProjectName)
	assert.Equal(t, "Prestige Estates Projects", details.PromoterName)

	_, err = store.FetchProjectDetails(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectStore_Upsert_Replaces(t *testing.T) {
	store := seededProjectStore(t)
	ctx := context.Background()

	updated := DemoProjects()[2]
	updated.ProjectStatus = "COMPLETED"
	require.NoError(t, store.Upsert(ctx, []domain.Project{updated}))

	details, err := store.FetchProjectDetails(ctx, updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", details.ProjectStatus)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DemoProjects()), count)
}

func TestProjectStore_CancelledContext(t *testing.T) {
	store := seededProjectStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.SearchProjects(ctx, "sobha")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.FetchProjectDetails(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
}
