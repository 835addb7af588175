package handlers

import (
	"net/http"
	"strings"

	"devboard/internal/db"
	"devboard/internal/middleware"
	"devboard/internal/models"
	"devboard/internal/services"
	"devboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// List returns the comment forest for a post, newest-first among roots and
// siblings.
func (h *CommentHandler) List(c *gin.Context) {
	postIDStr := c.Query("post_id")
	if postIDStr == "" {
		JSONError(c, errInvalidArgument("Post ID is required"))
		return
	}

	var post models.Post
	if err := db.DB.Select("id").Where("pid = ?", postIDStr).First(&post).Error; err != nil {
		JSONError(c, errNotFound("Post not found"))
		return
	}

	var comments []models.Comment
	if err := db.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		JSONError(c, err)
		return
	}

	roots := services.BuildCommentTree(comments)
	services.RenderCommentTree(roots, utils.RenderMarkdown)

	c.JSON(http.StatusOK, gin.H{"comments": roots})
}

type createCommentRequest struct {
	PostID   string `json:"post_id"`
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

// Create adds a comment, optionally as a reply. A parent must belong to the
// same post.
func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, errInvalidArgument("Post ID and content are required"))
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.PostID == "" || req.Content == "" {
		JSONError(c, errInvalidArgument("Post ID and content are required"))
		return
	}

	var post models.Post
	if err := db.DB.Select("id").Where("pid = ?", req.PostID).First(&post).Error; err != nil {
		JSONError(c, errNotFound("Post not found"))
		return
	}

	if req.ParentID != nil {
		var parent models.Comment
		if err := db.DB.Select("id, post_id").First(&parent, *req.ParentID).Error; err != nil {
			JSONError(c, errNotFound("Parent comment not found"))
			return
		}
		if parent.PostID != post.ID {
			JSONError(c, errInvalidArgument("Parent comment belongs to a different post"))
			return
		}
	}

	comment := models.Comment{
		Cid:      utils.RandStringBytesMaskImpr(8),
		PostID:   post.ID,
		UserID:   user.ID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		JSONError(c, err)
		return
	}

	comment.User = *user
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Delete soft-deletes a comment: the row is kept so reply trees stay intact,
// only the content is blanked. Author-only.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	cid := c.Param("cid")

	var comment models.Comment
	if err := db.DB.Where("cid = ?", cid).First(&comment).Error; err != nil {
		JSONError(c, errNotFound("Comment not found"))
		return
	}

	if comment.UserID != user.ID {
		JSONError(c, errForbidden("Not authorized to delete this comment"))
		return
	}

	comment.Content = "[deleted]"
	if err := db.DB.Save(&comment).Error; err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
