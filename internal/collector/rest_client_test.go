package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"yt-growth-tracker/internal/domain"
)

const channelBody = `{
	"pageInfo": {"totalResults": 1},
	"items": [{
		"id": "UCkzzNLnuM-VsATWC53ehwOQ",
		"snippet": {"title": "FlameFrags"},
		"statistics": {"subscriberCount": "120000", "viewCount": "45000000", "videoCount": "321"}
	}]
}`

const searchBody = `{
	"items": [
		{"id": {"videoId": "vid_one"}},
		{"id": {"videoId": "vid_two"}}
	]
}`

const videosBody = `{
	"items": [
		{
			"id": "vid_one",
			"snippet": {"title": "First", "publishedAt": "2026-08-20T10:00:00Z"},
			"statistics": {"viewCount": "100", "likeCount": "6", "commentCount": "4"}
		},
		{
			"id": "vid_two",
			"snippet": {"title": "Second", "publishedAt": "2026-08-27T10:00:00Z"},
			"statistics": {"viewCount": "300", "likeCount": "15", "commentCount": "5"}
		}
	]
}`

func testClient(t *testing.T, handler http.Handler) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rc, err := NewRESTClient("test-key", 10, 2*time.Second)
	if err != nil {
		t.Fatalf("NewRESTClient: %v", err)
	}
	// No etiquette needed against httptest
	rc.limiter = rate.NewLimiter(rate.Inf, 1)
	return rc.WithBaseURL(srv.URL)
}

func failureKind(t *testing.T, err error) domain.FailureKind {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	fe, ok := domain.AsFetchError(err)
	if !ok {
		t.Fatalf("not a FetchError: %v", err)
	}
	return fe.Kind
}

func TestFetchChannelSuccess(t *testing.T) {
	rc := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing key param on %s", r.URL.Path)
		}
		switch r.URL.Path {
		case "/channels":
			w.Write([]byte(channelBody))
		case "/search":
			w.Write([]byte(searchBody))
		case "/videos":
			w.Write([]byte(videosBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))

	s, err := rc.FetchChannel(context.Background(), "UCkzzNLnuM-VsATWC53ehwOQ")
	if err != nil {
		t.Fatalf("FetchChannel: %v", err)
	}

	if s.Title != "FlameFrags" {
		t.Fatalf("Title = %q", s.Title)
	}
	if s.Subscribers != 120000 || s.TotalViews != 45000000 || s.VideoCount != 321 {
		t.Fatalf("unexpected channel counts: %+v", s)
	}
	if len(s.RecentVideos) != 2 {
		t.Fatalf("got %d recent videos, want 2", len(s.RecentVideos))
	}
	if s.RecentVideos[0].Views != 100 || s.RecentVideos[0].Likes != 6 || s.RecentVideos[0].Comments != 4 {
		t.Fatalf("unexpected video stats: %+v", s.RecentVideos[0])
	}
	if s.FetchedAt.IsZero() {
		t.Fatal("FetchedAt not set")
	}
}

func TestFetchChannelNotFoundOnEmptyResult(t *testing.T) {
	rc := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pageInfo": {"totalResults": 0}, "items": []}`))
	}))

	_, err := rc.FetchChannel(context.Background(), "UC_ghost_0000")
	if kind := failureKind(t, err); kind != domain.KindNotFound {
		t.Fatalf("kind = %s, want %s", kind, domain.KindNotFound)
	}
}

func TestFetchChannelStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   domain.FailureKind
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, domain.KindAuthError},
		{"forbidden bad key", http.StatusForbidden, `{"error": {"errors": [{"reason": "keyInvalid"}]}}`, domain.KindAuthError},
		{"forbidden quota", http.StatusForbidden, `{"error": {"errors": [{"reason": "quotaExceeded"}]}}`, domain.KindRateLimited},
		{"too many requests", http.StatusTooManyRequests, `{}`, domain.KindRateLimited},
		{"not found", http.StatusNotFound, `{}`, domain.KindNotFound},
		{"server error", http.StatusInternalServerError, `{}`, domain.KindMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rc := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))

			_, err := rc.FetchChannel(context.Background(), "UC_any_00000")
			if kind := failureKind(t, err); kind != tc.want {
				t.Fatalf("kind = %s, want %s", kind, tc.want)
			}
		})
	}
}

func TestFetchChannelMalformedBody(t *testing.T) {
	rc := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pageInfo": `))
	}))

	_, err := rc.FetchChannel(context.Background(), "UC_any_00000")
	if kind := failureKind(t, err); kind != domain.KindMalformed {
		t.Fatalf("kind = %s, want %s", kind, domain.KindMalformed)
	}
}

func TestFetchChannelTimeout(t *testing.T) {
	rc := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(channelBody))
	}))
	rc.httpClient.Timeout = 50 * time.Millisecond

	_, err := rc.FetchChannel(context.Background(), "UC_slow_0000")
	if kind := failureKind(t, err); kind != domain.KindNetworkTimeout {
		t.Fatalf("kind = %s, want %s", kind, domain.KindNetworkTimeout)
	}
}

func TestFetchChannelNoRecentVideos(t *testing.T) {
	rc := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/channels":
			w.Write([]byte(channelBody))
		case "/search":
			w.Write([]byte(`{"items": []}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	s, err := rc.FetchChannel(context.Background(), "UCkzzNLnuM-VsATWC53ehwOQ")
	if err != nil {
		t.Fatalf("FetchChannel: %v", err)
	}
	if len(s.RecentVideos) != 0 {
		t.Fatalf("got %d recent videos, want 0", len(s.RecentVideos))
	}
}

func TestNewRESTClientRequiresKey(t *testing.T) {
	if _, err := NewRESTClient("", 10, time.Second); err == nil {
		t.Fatal("expected an error without an API key")
	}
}
