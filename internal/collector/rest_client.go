package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"yt-growth-tracker/internal/domain"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// RESTClient talks to the Data API over plain HTTP with the key as a
// query parameter. Base URL is overridable for tests.
type RESTClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	maxVideos  int
}

// API counts arrive as strings under "statistics"
type channelListResponse struct {
	PageInfo struct {
		TotalResults int `json:"totalResults"`
	} `json:"pageInfo"`
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			ViewCount       string `json:"viewCount"`
			VideoCount      string `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type searchListResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type apiErrorResponse struct {
	Error struct {
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func NewRESTClient(apiKey string, maxVideos int, timeout time.Duration) (*RESTClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is required for rest mode")
	}
	if maxVideos <= 0 {
		maxVideos = 10
	}
	return &RESTClient{
		httpClient: &http.Client{Timeout: timeout},
		// Quota etiquette: 1 request/second, never retried
		limiter:   rate.NewLimiter(rate.Every(1*time.Second), 1),
		apiKey:    apiKey,
		baseURL:   defaultBaseURL,
		maxVideos: maxVideos,
	}, nil
}

// WithBaseURL points the client at a different API root
func (rc *RESTClient) WithBaseURL(base string) *RESTClient {
	rc.baseURL = strings.TrimSuffix(base, "/")
	return rc
}

func (rc *RESTClient) FetchChannel(ctx context.Context, channelID string) (*domain.ChannelSnapshot, error) {
	snapshot, err := rc.fetchChannelInfo(ctx, channelID)
	if err != nil {
		return nil, err
	}

	videos, err := rc.fetchRecentVideos(ctx, channelID)
	if err != nil {
		return nil, err
	}

	snapshot.RecentVideos = videos
	snapshot.FetchedAt = time.Now().UTC()
	return snapshot, nil
}

func (rc *RESTClient) fetchChannelInfo(ctx context.Context, channelID string) (*domain.ChannelSnapshot, error) {
	params := url.Values{}
	params.Set("part", "statistics,snippet")
	params.Set("id", channelID)

	var cr channelListResponse
	if err := rc.get(ctx, channelID, "/channels", params, &cr); err != nil {
		return nil, err
	}

	if cr.PageInfo.TotalResults == 0 || len(cr.Items) == 0 {
		return nil, domain.NewFetchError(domain.KindNotFound, channelID,
			fmt.Errorf("no channel with id %s", channelID))
	}

	item := cr.Items[0]
	return &domain.ChannelSnapshot{
		ChannelID:   channelID,
		Title:       item.Snippet.Title,
		Subscribers: parseCount(item.Statistics.SubscriberCount),
		TotalViews:  parseCount(item.Statistics.ViewCount),
		VideoCount:  parseCount(item.Statistics.VideoCount),
	}, nil
}

// fetchRecentVideos resolves the most recent uploads in two steps: a date
// ordered search for the IDs, then a stats lookup for those IDs. The search
// endpoint returns no statistics, so the second call is unavoidable.
func (rc *RESTClient) fetchRecentVideos(ctx context.Context, channelID string) ([]domain.VideoStats, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("channelId", channelID)
	params.Set("order", "date")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(rc.maxVideos))

	var sr searchListResponse
	if err := rc.get(ctx, channelID, "/search", params, &sr); err != nil {
		return nil, err
	}

	if len(sr.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(sr.Items))
	for _, item := range sr.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	params = url.Values{}
	params.Set("part", "statistics,snippet")
	params.Set("id", strings.Join(ids, ","))

	var vr videoListResponse
	if err := rc.get(ctx, channelID, "/videos", params, &vr); err != nil {
		return nil, err
	}

	videos := make([]domain.VideoStats, 0, len(vr.Items))
	for _, item := range vr.Items {
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			return nil, domain.NewFetchError(domain.KindMalformed, channelID,
				fmt.Errorf("bad publishedAt %q: %w", item.Snippet.PublishedAt, err))
		}
		videos = append(videos, domain.VideoStats{
			VideoID:     item.ID,
			Title:       item.Snippet.Title,
			PublishedAt: publishedAt,
			Views:       parseCount(item.Statistics.ViewCount),
			Likes:       parseCount(item.Statistics.LikeCount),
			Comments:    parseCount(item.Statistics.CommentCount),
		})
	}
	return videos, nil
}

func (rc *RESTClient) get(ctx context.Context, channelID, path string, params url.Values, out any) error {
	if err := rc.limiter.Wait(ctx); err != nil {
		return domain.NewFetchError(domain.KindNetworkTimeout, channelID, err)
	}

	params.Set("key", rc.apiKey)
	reqURL := rc.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.NewFetchError(domain.KindMalformed, channelID, err)
	}

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return domain.NewFetchError(domain.KindNetworkTimeout, channelID, err)
		}
		return domain.NewFetchError(domain.KindMalformed, channelID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rc.statusError(resp, channelID)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewFetchError(domain.KindMalformed, channelID, err)
	}
	return nil
}

func (rc *RESTClient) statusError(resp *http.Response, channelID string) error {
	var body apiErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	cause := fmt.Errorf("api status %d", resp.StatusCode)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.NewFetchError(domain.KindAuthError, channelID, cause)
	case http.StatusForbidden:
		// 403 carries both quota and key problems; the reason strings
		// disambiguate
		for _, e := range body.Error.Errors {
			switch e.Reason {
			case "quotaExceeded", "rateLimitExceeded", "userRateLimitExceeded":
				return domain.NewFetchError(domain.KindRateLimited, channelID, cause)
			}
		}
		return domain.NewFetchError(domain.KindAuthError, channelID, cause)
	case http.StatusNotFound:
		return domain.NewFetchError(domain.KindNotFound, channelID, cause)
	case http.StatusTooManyRequests:
		return domain.NewFetchError(domain.KindRateLimited, channelID, cause)
	default:
		return domain.NewFetchError(domain.KindMalformed, channelID, cause)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Timeout()
	}
	return false
}

// parseCount reads a string-typed API count, empty or absent means 0
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
