package vietstock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/brokercheck/internal/models"
)

const eventsPage = `<html><body>
<form id="filter"><input type="hidden" name="__RequestVerificationToken" value="tok-xyz" /></form>
</body></html>`

func newEventsServer(t *testing.T, page string, events any) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case eventsPagePath:
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
			_, _ = w.Write([]byte(page))
		case eventsDataPath:
			assert.NoError(t, r.ParseForm())
			captured = *r
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(events)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestFetchEvents_PostsFormWithToken(t *testing.T) {
	exDate := "/Date(1750896000000)/"
	srv, captured := newEventsServer(t, eventsPage, []any{
		[]map[string]any{
			{"EventID": 1, "Code": "VNM", "Title": "Trả cổ tức bằng tiền 1,500 đồng/CP", "GDKHQDate": exDate, "NDKCCDate": nil},
			{"EventID": 2, "Code": "FPT", "Title": "Phát hành cổ phiếu"},
		},
		[]int{2},
	})

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(100))
	events, err := c.FetchEvents(context.Background(), models.EventQuery{FromDate: "2025-06-23", ToDate: "2025-06-29"})
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "VNM", events[0].Code)
	require.NotNil(t, events[0].GDKHQDate)
	assert.Equal(t, exDate, *events[0].GDKHQDate)
	assert.Nil(t, events[0].NDKCCDate)

	form := captured.PostForm
	assert.Equal(t, "tok-xyz", form.Get("__RequestVerificationToken"))
	assert.Equal(t, "1", form.Get("eventTypeID"))
	assert.Equal(t, "0", form.Get("channelID"))
	assert.Equal(t, "-1", form.Get("catID"))
	assert.Equal(t, "2025-06-23", form.Get("fDate"))
	assert.Equal(t, "2025-06-29", form.Get("tDate"))
	assert.Equal(t, "1", form.Get("page"))
	assert.Equal(t, "20", form.Get("pageSize"))
	assert.Equal(t, "Date1", form.Get("orderBy"))
	assert.Equal(t, "DESC", form.Get("orderDir"))

	assert.Equal(t, "XMLHttpRequest", captured.Header.Get("X-Requested-With"))
	cookie, err := captured.Cookie("session")
	require.NoError(t, err)
	assert.Equal(t, "s1", cookie.Value)
}

func TestFetchEvents_MissingToken(t *testing.T) {
	srv, _ := newEventsServer(t, "<html><body><form></form></body></html>", []any{})

	_, err := NewClient(WithBaseURL(srv.URL)).FetchEvents(context.Background(), models.EventQuery{})
	require.ErrorIs(t, err, ErrTokenNotFound)
	assert.Equal(t, "verification token not found", err.Error())
}

func TestFetchEvents_EmptyResponse(t *testing.T) {
	srv, _ := newEventsServer(t, eventsPage, []any{})

	events, err := NewClient(WithBaseURL(srv.URL)).FetchEvents(context.Background(), models.EventQuery{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFetchEvents_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == eventsPagePath {
			_, _ = w.Write([]byte(eventsPage))
			return
		}
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).FetchEvents(context.Background(), models.EventQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "events API failed: 403")
}

func TestFindToken_NestedMarkup(t *testing.T) {
	page := `<div><section><input name="other" value="no"><p><input name="__RequestVerificationToken" value="deep"></p></section></div>`
	srv, captured := newEventsServer(t, page, []any{[]any{}})

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.FetchEvents(context.Background(), models.EventQuery{Code: "VNM"})
	require.NoError(t, err)
	assert.Equal(t, "deep", captured.PostForm.Get("__RequestVerificationToken"))
	assert.Equal(t, "VNM", captured.PostForm.Get("code"))
}

func TestFetchEvents_ConfiguredPageSize(t *testing.T) {
	srv, captured := newEventsServer(t, eventsPage, []any{[]map[string]any{}, []int{0}})

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(100), WithPageSize(50))
	_, err := c.FetchEvents(context.Background(), models.EventQuery{FromDate: "2025-06-23", ToDate: "2025-06-29"})
	require.NoError(t, err)
	assert.Equal(t, "50", captured.PostForm.Get("pageSize"))
}

func TestWithRateLimit_ZeroKeepsDefault(t *testing.T) {
	srv, _ := newEventsServer(t, eventsPage, []any{[]map[string]any{}, []int{0}})

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(0))
	_, err := c.FetchEvents(context.Background(), models.EventQuery{FromDate: "2025-06-23", ToDate: "2025-06-29"})
	require.NoError(t, err)
}
