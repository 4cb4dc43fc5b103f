package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"yt-growth-tracker/internal/domain"
)

// APIClient fetches through the official Data API client library
type APIClient struct {
	service   *youtube.Service
	limiter   *rate.Limiter
	maxVideos int
	timeout   time.Duration
}

func NewAPIClient(ctx context.Context, apiKey string, maxVideos int, timeout time.Duration) (*APIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is required for api mode")
	}
	if maxVideos <= 0 {
		maxVideos = 10
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}

	return &APIClient{
		service:   service,
		limiter:   rate.NewLimiter(rate.Every(1*time.Second), 1),
		maxVideos: maxVideos,
		timeout:   timeout,
	}, nil
}

func (ac *APIClient) FetchChannel(ctx context.Context, channelID string) (*domain.ChannelSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, ac.timeout)
	defer cancel()

	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, domain.NewFetchError(domain.KindNetworkTimeout, channelID, err)
	}

	channelRes, err := ac.service.Channels.List([]string{"statistics", "snippet"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapAPIError(err, channelID)
	}
	if len(channelRes.Items) == 0 {
		return nil, domain.NewFetchError(domain.KindNotFound, channelID,
			fmt.Errorf("no channel with id %s", channelID))
	}

	item := channelRes.Items[0]
	if item.Snippet == nil || item.Statistics == nil {
		return nil, domain.NewFetchError(domain.KindMalformed, channelID,
			fmt.Errorf("channel response missing snippet or statistics"))
	}
	snapshot := &domain.ChannelSnapshot{
		ChannelID:   channelID,
		Title:       item.Snippet.Title,
		Subscribers: int64(item.Statistics.SubscriberCount),
		TotalViews:  int64(item.Statistics.ViewCount),
		VideoCount:  int64(item.Statistics.VideoCount),
	}

	videos, err := ac.fetchRecentVideos(ctx, channelID)
	if err != nil {
		return nil, err
	}

	snapshot.RecentVideos = videos
	snapshot.FetchedAt = time.Now().UTC()
	return snapshot, nil
}

func (ac *APIClient) fetchRecentVideos(ctx context.Context, channelID string) ([]domain.VideoStats, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, domain.NewFetchError(domain.KindNetworkTimeout, channelID, err)
	}

	searchRes, err := ac.service.Search.List([]string{"id"}).
		ChannelId(channelID).
		Order("date").
		Type("video").
		MaxResults(int64(ac.maxVideos)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapAPIError(err, channelID)
	}
	if len(searchRes.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(searchRes.Items))
	for _, item := range searchRes.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}

	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, domain.NewFetchError(domain.KindNetworkTimeout, channelID, err)
	}

	videoRes, err := ac.service.Videos.List([]string{"statistics", "snippet"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapAPIError(err, channelID)
	}

	videos := make([]domain.VideoStats, 0, len(videoRes.Items))
	for _, item := range videoRes.Items {
		if item.Snippet == nil || item.Statistics == nil {
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			return nil, domain.NewFetchError(domain.KindMalformed, channelID,
				fmt.Errorf("bad publishedAt %q: %w", item.Snippet.PublishedAt, err))
		}
		videos = append(videos, domain.VideoStats{
			VideoID:     item.Id,
			Title:       item.Snippet.Title,
			PublishedAt: publishedAt,
			Views:       int64(item.Statistics.ViewCount),
			Likes:       int64(item.Statistics.LikeCount),
			Comments:    int64(item.Statistics.CommentCount),
		})
	}
	return videos, nil
}

func mapAPIError(err error, channelID string) error {
	if isTimeout(err) {
		return domain.NewFetchError(domain.KindNetworkTimeout, channelID, err)
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return domain.NewFetchError(domain.KindMalformed, channelID, err)
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return domain.NewFetchError(domain.KindAuthError, channelID, err)
	case http.StatusForbidden:
		for _, item := range gerr.Errors {
			switch item.Reason {
			case "quotaExceeded", "rateLimitExceeded", "userRateLimitExceeded":
				return domain.NewFetchError(domain.KindRateLimited, channelID, err)
			}
		}
		return domain.NewFetchError(domain.KindAuthError, channelID, err)
	case http.StatusNotFound:
		return domain.NewFetchError(domain.KindNotFound, channelID, err)
	case http.StatusTooManyRequests:
		return domain.NewFetchError(domain.KindRateLimited, channelID, err)
	default:
		return domain.NewFetchError(domain.KindMalformed, channelID, err)
	}
}
