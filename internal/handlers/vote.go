package handlers

import (
	"errors"
	"net/http"

	"devboard/internal/db"
	"devboard/internal/middleware"
	"devboard/internal/models"
	"devboard/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type castVoteRequest struct {
	PostID string `json:"post_id"`
	Value  int    `json:"value"`
}

// Cast applies one directional vote on a post. Same value twice retracts,
// the opposite value flips. Responds with the new tally.
func (h *VoteHandler) Cast(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, errInvalidArgument("Post ID and vote value (1 or -1) are required"))
		return
	}

	// Validated before any storage call
	if req.PostID == "" || !models.IsValidVoteValue(req.Value) {
		JSONError(c, errInvalidArgument("Post ID and vote value (1 or -1) are required"))
		return
	}

	var post models.Post
	if err := db.DB.Select("id").Where("pid = ?", req.PostID).First(&post).Error; err != nil {
		JSONError(c, errNotFound("Post not found"))
		return
	}

	tally, err := services.CastVote(user.ID, post.ID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVoteValue):
			JSONError(c, errInvalidArgument(err.Error()))
		case errors.Is(err, services.ErrPostNotFound):
			JSONError(c, errNotFound("Post not found"))
		default:
			JSONError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"upvotes": tally})
}
