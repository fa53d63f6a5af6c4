package ports

import (
	"context"

	"chart-insight-api/internal/infrastructure/twitter"
)

type TwitterClient interface {
	FetchTweet(ctx context.Context, tweetID string) (*twitter.Tweet, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}
