package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

var testResults = domain.ResultSet{koramangala, whitefield, hebbal}

var whitefieldDetails = domain.ProjectDetails{
	ProjectName:            "Prestige Lakeside",
	PromoterName:           "Prestige Estates Projects",
	ProjectStatus:          "NEW",
	RERARegistrationNumber: "PRM/KA/RERA/1251/446/PR/180110/001633",
	SourceOfWater:          "BWSSB",
	ApprovingAuthority:     "BBMP",
	ProjectStartDate:       "2018-01-10",
	ProposedCompletionDate: "2024-12-31",
}

func TestSelectionController_Initial(t *testing.T) {
	c := NewSelectionController()
	sel := c.Selection()

	assert.Equal(t, domain.SelectionIdle, sel.Status)
	assert.Nil(t, sel.SelectedID)
	assert.Nil(t, sel.Details)
}

func TestSelectionController_Select_UnknownProject(t *testing.T) {
	c := NewSelectionController()
	ticket, _, _ := c.Select(whitefield.ID, testResults)
	c.Resolve(ticket, whitefieldDetails)
	before := c.Selection()

	_, started, err := c.Select(4242, testResults)

	assert.ErrorIs(t, err, domain.ErrUnknownProject)
	assert.Contains(t, err.Error(), "4242")
	assert.False(t, started)
	assert.Equal(t, before, c.Selection())
}

func TestSelectionController_Select_StartsLoading(t *testing.T) {
	c := NewSelectionController()

	ticket, started, err := c.Select(whitefield.ID, testResults)

	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, whitefield.ID, ticket.ID)

	sel := c.Selection()
	assert.Equal(t, domain.SelectionLoading, sel.Status)
	assert.True(t, sel.IsSelected(whitefield.ID))
	assert.Nil(t, sel.Details)
	assert.True(t, sel.Highlighted(whitefield.ID))
}

func TestSelectionController_Resolve(t *testing.T) {
	c := NewSelectionController()
	ticket, _, _ := c.Select(whitefield.ID, testResults)

	require.True(t, c.Resolve(ticket, whitefieldDetails))

	sel := c.Selection()
	assert.Equal(t, domain.SelectionLoaded, sel.Status)
	assert.Equal(t, whitefieldDetails, *sel.Details)
	assert.NoError(t, sel.Err)
}

func TestSelectionController_Select_SameLoadedIDIsNoop(t *testing.T) {
	c := NewSelectionController()
	ticket, _, _ := c.Select(whitefield.ID, testResults)
	c.Resolve(ticket, whitefieldDetails)

	_, started, err := c.Select(whitefield.ID, testResults)

	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, domain.SelectionLoaded, c.Selection().Status)
	assert.Equal(t, whitefieldDetails, *c.Selection().Details)
}

func TestSelectionController_Select_SameLoadingIDRestarts(t *testing.T) {
	c := NewSelectionController()
	first, _, _ := c.Select(whitefield.ID, testResults)

	second, started, err := c.Select(whitefield.ID, testResults)

	require.NoError(t, err)
	assert.True(t, started)
	assert.False(t, c.Resolve(first, whitefieldDetails))
	assert.True(t, c.Resolve(second, whitefieldDetails))
}

func TestSelectionController_LastSelectedWins(t *testing.T) {
	c := NewSelectionController()
	x, _, _ := c.Select(koramangala.ID, testResults)
	y, _, _ := c.Select(whitefield.ID, testResults)

	// Y resolves first, then X's late response arrives.
	require.True(t, c.Resolve(y, whitefieldDetails))
	assert.False(t, c.Resolve(x, domain.ProjectDetails{ProjectName: "Koramangala Heights"}))
	assert.False(t, c.Reject(x, errors.New("late failure")))

	sel := c.Selection()
	assert.True(t, sel.IsSelected(whitefield.ID))
	assert.Equal(t, domain.SelectionLoaded, sel.Status)
	assert.Equal(t, whitefieldDetails, *sel.Details)
}

func TestSelectionController_Reject(t *testing.T) {
	c := NewSelectionController()
	ticket, _, _ := c.Select(whitefield.ID, testResults)
	cause := errors.New("503 service unavailable")

	require.True(t, c.Reject(ticket, cause))

	sel := c.Selection()
	assert.Equal(t, domain.SelectionFailed, sel.Status)
	assert.True(t, sel.IsSelected(whitefield.ID))
	assert.Nil(t, sel.Details)
	assert.ErrorIs(t, sel.Err, domain.ErrDetailFetchFailed)
	assert.ErrorIs(t, sel.Err, cause)
	assert.False(t, sel.Highlighted(whitefield.ID))
}

func TestSelectionController_Select_AfterFailureRetries(t *testing.T) {
	c := NewSelectionController()
	ticket, _, _ := c.Select(whitefield.ID, testResults)
	c.Reject(ticket, errors.New("timeout"))

	retry, started, err := c.Select(whitefield.ID, testResults)

	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, domain.SelectionLoading, c.Selection().Status)
	assert.NoError(t, c.Selection().Err)
	assert.True(t, c.Resolve(retry, whitefieldDetails))
}

func TestSelectionController_Reset(t *testing.T) {
	c := NewSelectionController()
	ticket, _, _ := c.Select(whitefield.ID, testResults)

	c.Reset()

	sel := c.Selection()
	assert.Equal(t, domain.SelectionIdle, sel.Status)
	assert.Nil(t, sel.SelectedID)
	assert.Nil(t, sel.Details)
	assert.False(t, c.Resolve(ticket, whitefieldDetails), "reset invalidates outstanding fetches")
	assert.Equal(t, domain.SelectionIdle, c.Selection().Status)
}

func TestSelectionController_Resolve_IgnoredAfterLoaded(t *testing.T) {
	c := NewSelectionController()
	ticket, _, _ := c.Select(whitefield.ID, testResults)
	c.Resolve(ticket, whitefieldDetails)

	assert.False(t, c.Resolve(ticket, domain.ProjectDetails{ProjectName: "again"}))
	assert.False(t, c.Reject(ticket, errors.New("late")))
	assert.Equal(t, whitefieldDetails, *c.Selection().Details)
}

func TestSelectionController_SelectionIsACopy(t *testing.T) {
	c := NewSelectionController()
	ticket, _, _ := c.Select(whitefield.ID, testResults)
	c.Resolve(ticket, whitefieldDetails)

	sel := c.Selection()
	*sel.SelectedID = 999
	sel.Details.ProjectName = "mutated"

	fresh := c.Selection()
	assert.Equal(t, whitefield.ID, *fresh.SelectedID)
	assert.Equal(t, "Prestige Lakeside", fresh.Details.ProjectName)
}
