package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"yt-growth-tracker/internal/domain"
)

// MockClient implements domain.Collector but returns fake data
type MockClient struct {
	maxVideos int
}

func NewMockClient(maxVideos int) *MockClient {
	if maxVideos <= 0 {
		maxVideos = 10
	}
	return &MockClient{maxVideos: maxVideos}
}

func (mc *MockClient) FetchChannel(ctx context.Context, channelID string) (*domain.ChannelSnapshot, error) {
	// Simulate network latency
	time.Sleep(200 * time.Millisecond)

	now := time.Now().UTC()
	videos := make([]domain.VideoStats, 0, mc.maxVideos)
	for i := 0; i < mc.maxVideos; i++ {
		views := int64(1000 + rand.Intn(50000))
		videos = append(videos, domain.VideoStats{
			VideoID:     fmt.Sprintf("mock_%s_%d", channelID, i),
			Title:       fmt.Sprintf("Simulated upload #%d", i),
			PublishedAt: now.AddDate(0, 0, -i*2),
			Views:       views,
			Likes:       views / 20,
			Comments:    views / 100,
		})
	}

	return &domain.ChannelSnapshot{
		ChannelID:    channelID,
		Title:        "Mock Channel " + channelID,
		Subscribers:  int64(10000 + rand.Intn(1000000)),
		TotalViews:   int64(1000000 + rand.Intn(100000000)),
		VideoCount:   int64(50 + rand.Intn(2000)),
		RecentVideos: videos,
		FetchedAt:    now,
	}, nil
}
