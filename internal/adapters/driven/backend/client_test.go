package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second, RetryMax: 2})
	require.NoError(t, err)
	c.http.RetryWaitMin = time.Millisecond
	c.http.RetryWaitMax = 5 * time.Millisecond
	return c
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	tests := []string{"", "localhost:5000", "ftp://example.com", "http://", "://bad"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			c, err := NewClient(Config{BaseURL: raw})
			assert.ErrorIs(t, err, ErrInvalidBaseURL)
			assert.Nil(t, c)
		})
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://localhost:5000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

func TestClient_SearchProjects(t *testing.T) {
	var gotQuery string
	var gotRequestID string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotRequestID = r.Header.Get(RequestIDHeader)

		var body searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotQuery = body.Query

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 7, "name": "Prestige Lakeside", "latitude": 12.9698, "longitude": 77.75},
			{"id": 3, "name": "Sobha Dream Acres", "latitude": 12.9352, "longitude": 77.722}
		]`))
	}))

	results, err := c.SearchProjects(context.Background(), "villas in Whitefield")

	require.NoError(t, err)
	assert.Equal(t, "villas in Whitefield", gotQuery)
	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err)
	assert.Equal(t, []domain.ProjectSummary{
		{ID: 7, Name: "Prestige Lakeside", Latitude: 12.9698, Longitude: 77.75},
		{ID: 3, Name: "Sobha Dream Acres", Latitude: 12.9352, Longitude: 77.722},
	}, results)
}

func TestClient_SearchProjects_EmptyArrayAndNull(t *testing.T) {
	for _, body := range []string{"[]", "null"} {
		t.Run(body, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))

			results, err := c.SearchProjects(context.Background(), "nothing")
			require.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results)
		})
	}
}

func TestClient_SearchProjects_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"id": 1, "name": "A", "latitude": 13, "longitude": 77.6}]`))
	}))

	results, err := c.SearchProjects(context.Background(), "a")

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_SearchProjects_GivesUp(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "database locked"}`))
	}))

	_, err := c.SearchProjects(context.Background(), "a")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database locked")
}

func TestClient_SearchProjects_MalformedBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"`))
	}))

	_, err := c.SearchProjects(context.Background(), "a")
	assert.Error(t, err)
}

func TestClient_FetchProjectDetails(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/project/7", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"project_name": "Prestige Lakeside",
			"promoter_name": "Prestige Estates",
			"project_status": "NEW",
			"rera_registration_number": "PRM/KA/RERA/1251",
			"source_of_water": "BWSSB",
			"approving_authority": "BBMP",
			"project_start_date": "2018-01-10",
			"proposed_completion_date": "2024-12-31"
		}`))
	}))

	details, err := c.FetchProjectDetails(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Prestige Lakeside", details.ProjectName)
	assert.Equal(t, "Prestige Estates", details.PromoterName)
	assert.Equal(t, "2024-12-31", details.ProposedCompletionDate)
}

func TestClient_FetchProjectDetails_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Project not found"}`))
	}))

	details, err := c.FetchProjectDetails(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, details)
}

func TestClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchProjects(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_TooManyRequestsBacksOff(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	c.http.RetryMax = 0

	_, err := c.SearchProjects(context.Background(), "a")

	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.limiter.Wait(ctx), context.DeadlineExceeded)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 30*time.Second, retryAfter("30"))
	assert.Equal(t, time.Duration(0), retryAfter(""))
	assert.Equal(t, time.Duration(0), retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
	assert.Equal(t, time.Duration(0), retryAfter("-1"))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Project not found", errorMessage([]byte(`{"error":"Project not found"}`)))
	assert.Equal(t, "plain text", errorMessage([]byte("plain text\n")))
}
