package twitter

type TweetDataResponse struct {
	TweetText string `json:"tweet_text"`
	ImageURL  string `json:"image_url"`
}
