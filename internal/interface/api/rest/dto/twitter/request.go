package twitter

type TweetDataRequest struct {
	URL     string `json:"url"`
	TweetID string `json:"tweet_id"`
}
