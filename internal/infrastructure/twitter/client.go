package twitter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"chart-insight-api/config"
)

var (
	ErrTweetNotFound = errors.New("tweet not found")
	ErrNoPhoto       = errors.New("tweet has no photo attachment")
)

// Tweet is the slice of a tweet the analysis flow needs: its text and the
// URL of its first photo.
type Tweet struct {
	Text     string
	ImageURL string
}

type (
	lookupResponse struct {
		Data *struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
		Includes struct {
			Media []struct {
				MediaKey string `json:"media_key"`
				Type     string `json:"type"`
				URL      string `json:"url"`
			} `json:"media"`
		} `json:"includes"`
	}
)

type Client struct {
	logger     *zap.Logger
	httpClient *resty.Client
	baseURL    string
}

func New(logger *zap.Logger, cfg config.Twitter) *Client {
	client := resty.New().
		SetHeader("User-Agent", "ChartInsight/1.0").
		SetAuthToken(cfg.BearerToken).
		SetTimeout(15 * time.Second)

	return &Client{
		logger:     logger,
		httpClient: client,
		baseURL:    cfg.BaseURL,
	}
}

// FetchTweet looks a tweet up by id and returns its text plus the URL of
// its first photo attachment.
func (c *Client) FetchTweet(ctx context.Context, tweetID string) (*Tweet, error) {
	var result lookupResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"expansions":   "attachments.media_keys",
			"media.fields": "url,type",
			"tweet.fields": "text",
		}).
		SetResult(&result).
		Get(fmt.Sprintf("%s/2/tweets/%s", c.baseURL, tweetID))
	if err != nil {
		return nil, fmt.Errorf("failed to query tweet lookup API: %w", err)
	}
	if resp.IsError() || result.Data == nil {
		return nil, ErrTweetNotFound
	}

	for _, m := range result.Includes.Media {
		if m.Type == "photo" && m.URL != "" {
			return &Tweet{Text: result.Data.Text, ImageURL: m.URL}, nil
		}
	}

	return nil, ErrNoPhoto
}

// FetchImage downloads the raw bytes behind a media URL so they can be
// ingested like any other upload.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download tweet media: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tweet media download status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}
