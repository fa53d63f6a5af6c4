package rest

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chart-insight-api/internal/application/ports"
	"chart-insight-api/internal/infrastructure/twitter"
	twitterDTO "chart-insight-api/internal/interface/api/rest/dto/twitter"
	"chart-insight-api/internal/interface/api/rest/middleware"
)

var tweetStatusRe = regexp.MustCompile(`status(?:es)?/(\d+)`)

type TwitterController struct {
	twitterClient ports.TwitterClient
	logger        *zap.Logger
}

func NewTwitterController(
	r *gin.Engine,
	twitterClient ports.TwitterClient,
	logger *zap.Logger,
	authService ports.Auth,
) *TwitterController {
	tc := &TwitterController{
		twitterClient: twitterClient,
		logger:        logger,
	}

	r.POST(RouteTwitterData, middleware.AuthMiddleware(authService), tc.TweetDataHandler)

	return tc
}

func (tc *TwitterController) TweetDataHandler(c *gin.Context) {
	var req twitterDTO.TweetDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	tweetID := req.TweetID
	if tweetID == "" && req.URL != "" {
		if m := tweetStatusRe.FindStringSubmatch(req.URL); m != nil {
			tweetID = m[1]
		}
	}
	if tweetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tweet_id or a valid tweet url is required"})
		return
	}

	tweet, err := tc.twitterClient.FetchTweet(c.Request.Context(), tweetID)
	if err != nil {
		if errors.Is(err, twitter.ErrTweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tweet not found"})
			return
		}
		if errors.Is(err, twitter.ErrNoPhoto) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusBadGateway,
			gin.H{"error": "failed to fetch tweet"},
		)
		tc.logger.Error("FetchTweet() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, twitterDTO.TweetDataResponse{
		TweetText: tweet.Text,
		ImageURL:  tweet.ImageURL,
	})
}
