package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// draftServer serves a single mutable draft per meeting id.
type draftServer struct {
	mu     sync.Mutex
	drafts map[string]Draft
	block  chan struct{}
}

func newDraftServer() *draftServer {
	return &draftServer{drafts: map[string]Draft{}}
}

func (s *draftServer) set(meetingID, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[meetingID] = Draft{MeetingID: meetingID, Content: content, MinutesVersion: version}
}

func (s *draftServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.block != nil {
			<-s.block
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		// Paths look like /meetings/<id>/draft-minutes.
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[0] != "meetings" || parts[2] != "draft-minutes" {
			http.NotFound(w, r)
			return
		}
		meetingID := parts[1]
		draft, ok := s.drafts[meetingID]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Meeting not found"})
			return
		}

		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(draft)
		case http.MethodPut:
			var req struct {
				Content     string `json:"content"`
				BaseVersion int    `json:"base_version"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if req.BaseVersion != draft.MinutesVersion {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error":           "Draft minutes were updated by someone else",
					"current_version": draft.MinutesVersion,
					"current_content": draft.Content,
				})
				return
			}
			draft.Content = req.Content
			draft.MinutesVersion++
			s.drafts[meetingID] = draft
			json.NewEncoder(w).Encode(draft)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func TestPoller_OverwritesLocalBufferOnNewerRemoteVersion(t *testing.T) {
	server := newDraftServer()
	server.set("meeting_1", "remote v1", 1)
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	var synced []int
	var mu sync.Mutex
	poller := NewSyncPoller(NewClient(ts.URL),
		WithInterval(10*time.Millisecond),
		WithOnSync(func(meetingID string, version int, content string) {
			mu.Lock()
			synced = append(synced, version)
			mu.Unlock()
		}),
	)
	poller.Select("meeting_1", &Draft{MeetingID: "meeting_1", Content: "remote v1", MinutesVersion: 1})
	poller.Start(context.Background())
	defer poller.Stop()

	// Unsaved local edits are overwritten when the remote moves on.
	poller.Edit("local unsaved edits")
	server.set("meeting_1", "remote v2", 2)

	require.Eventually(t, func() bool {
		content, version := poller.Buffer()
		return version == 2 && content == "remote v2"
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Contains(t, synced, 2)
}

func TestPoller_DropsResponsesAfterSelectionChanges(t *testing.T) {
	server := newDraftServer()
	server.set("meeting_1", "one", 5)
	server.set("meeting_2", "two", 1)
	server.block = make(chan struct{})
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	poller := NewSyncPoller(NewClient(ts.URL), WithInterval(10*time.Millisecond))
	poller.Select("meeting_1", nil)
	poller.Start(context.Background())
	defer poller.Stop()

	// Let a poll for meeting_1 get in flight, then switch selection
	// before the response lands.
	time.Sleep(30 * time.Millisecond)
	poller.Select("meeting_2", &Draft{MeetingID: "meeting_2", Content: "two", MinutesVersion: 1})
	close(server.block)

	time.Sleep(50 * time.Millisecond)
	content, version := poller.Buffer()
	require.Equal(t, "two", content)
	require.Equal(t, 1, version)
}

func TestPoller_SaveAdoptsWinnerOnConflict(t *testing.T) {
	server := newDraftServer()
	server.set("meeting_1", "winning content", 3)
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	poller := NewSyncPoller(NewClient(ts.URL))
	poller.Select("meeting_1", &Draft{MeetingID: "meeting_1", Content: "stale", MinutesVersion: 2})

	err := poller.Save(context.Background())
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, 3, conflict.CurrentVersion)

	content, version := poller.Buffer()
	require.Equal(t, "winning content", content)
	require.Equal(t, 3, version)
}

func TestPoller_SaveAdvancesVersion(t *testing.T) {
	server := newDraftServer()
	server.set("meeting_1", "v1", 1)
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	poller := NewSyncPoller(NewClient(ts.URL))
	poller.Select("meeting_1", &Draft{MeetingID: "meeting_1", Content: "v1", MinutesVersion: 1})
	poller.Edit("v2 content")

	require.NoError(t, poller.Save(context.Background()))
	_, version := poller.Buffer()
	require.Equal(t, 2, version)
}

func TestClient_ListVersionsAndErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/meetings/meeting_1/draft-minutes/versions" {
			next := 1
			json.NewEncoder(w).Encode(VersionPage{
				Items:      []Version{{MeetingID: "meeting_1", Version: 2, Content: "v2"}},
				Limit:      1,
				NextOffset: &next,
				HasMore:    true,
				Total:      2,
			})
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Meeting not found"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, WithToken("demo"))
	page, err := c.ListVersions(context.Background(), "meeting_1", 1, 0)
	require.NoError(t, err)
	require.True(t, page.HasMore)
	require.Len(t, page.Items, 1)

	_, err = c.GetDraft(context.Background(), "meeting_missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Meeting not found", apiErr.Message)
}
