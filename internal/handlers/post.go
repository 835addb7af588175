package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"devboard/internal/db"
	"devboard/internal/middleware"
	"devboard/internal/models"
	"devboard/internal/services"
	"devboard/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	images *services.ImageStore
}

func NewPostHandler(images *services.ImageStore) *PostHandler {
	return &PostHandler{images: images}
}

// fillCommentCounts batch-fills CommentCount for a page of posts.
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

func postItem(p models.Post) gin.H {
	return gin.H{
		"id":            p.ID,
		"pid":           p.Pid,
		"title":         p.Title,
		"content":       p.Content,
		"image_urls":    p.ImageURLList(),
		"tags":          p.TagList(),
		"upvotes":       p.Upvotes,
		"views":         p.Views,
		"comment_count": p.CommentCount,
		"created_at":    p.CreatedAt,
		"updated_at":    p.UpdatedAt,
		"author": gin.H{
			"username":   p.User.Username,
			"avatar_url": p.User.AvatarURL,
		},
	}
}

// List returns one feed page, newest first, optionally filtered by tag
// and/or author username. Offset pagination; an insert between two page
// fetches can shift rows across pages.
func (h *PostHandler) List(c *gin.Context) {
	page := services.ClampPage(utils.StringToInt(c.DefaultQuery("page", "1")))
	pageSize := services.ClampPageSize(utils.StringToInt(c.DefaultQuery("page_size", "0")))
	tag := strings.ToLower(strings.TrimSpace(c.Query("tag")))
	author := strings.TrimSpace(c.Query("author"))

	cacheKey := fmt.Sprintf("posts:list:%s:%s:%d:%d", tag, author, page, pageSize)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	query := db.DB.Model(&models.Post{})
	if tag != "" {
		query = query.Where("tags LIKE ?", fmt.Sprintf(`%%"%s"%%`, tag))
	}
	if author != "" {
		var user models.User
		if err := db.DB.Where("username = ?", author).First(&user).Error; err != nil {
			JSONError(c, errNotFound("User not found"))
			return
		}
		query = query.Where("user_id = ?", user.ID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		JSONError(c, err)
		return
	}
	pageInfo := services.NewPageInfo(page, pageSize, total)

	var posts []models.Post
	if err := query.Preload("User").
		Order("created_at DESC").
		Limit(pageInfo.PageSize).
		Offset(pageInfo.Offset()).
		Find(&posts).Error; err != nil {
		JSONError(c, err)
		return
	}

	fillCommentCounts(posts)

	items := make([]gin.H, len(posts))
	for i, p := range posts {
		items[i] = postItem(p)
	}

	data := gin.H{
		"items":       items,
		"page":        pageInfo.Page,
		"page_size":   pageInfo.PageSize,
		"total":       pageInfo.Total,
		"total_pages": pageInfo.TotalPages,
		"has_next":    pageInfo.HasNext,
		"has_prev":    pageInfo.HasPrev,
	}

	utils.GetCache().Set(cacheKey, data, 1*time.Minute)
	c.JSON(http.StatusOK, data)
}

// Create handles multipart post creation: title, content, tags (JSON array)
// and any number of image files under keys starting with "image".
func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	if title == "" || content == "" {
		JSONError(c, errInvalidArgument("Title and content are required"))
		return
	}

	var tags []string
	if tagsStr := c.PostForm("tags"); tagsStr != "" {
		if err := json.Unmarshal([]byte(tagsStr), &tags); err != nil {
			tags = nil
		}
	}
	tags = utils.NormalizeTags(tags)

	imageURLs := []string{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for key, files := range form.File {
			if !strings.HasPrefix(key, "image") {
				continue
			}
			for _, header := range files {
				if header.Size == 0 {
					continue
				}
				if header.Size > services.MaxImageSize {
					JSONError(c, errInvalidArgument("Each image must be less than 5MB"))
					return
				}
				if h.images == nil {
					JSONError(c, errInvalidArgument("Image uploads are not enabled"))
					return
				}
				file, err := header.Open()
				if err != nil {
					JSONError(c, err)
					return
				}
				result, err := h.images.Upload(c.Request.Context(), file, header)
				file.Close()
				if err != nil {
					JSONError(c, err)
					return
				}
				imageURLs = append(imageURLs, result.URL)
			}
		}
	}

	post := models.Post{
		Pid:     utils.RandStringBytesMaskImpr(8),
		UserID:  user.ID,
		Title:   title,
		Content: content,
	}
	post.SetTags(tags)
	post.SetImageURLs(imageURLs)

	if err := db.DB.Create(&post).Error; err != nil {
		JSONError(c, err)
		return
	}

	post.User = *user
	utils.GetCache().Delete("posts:list:::1:8")

	c.JSON(http.StatusCreated, gin.H{"post": postItem(post)})
}

// Detail returns one post with its rendered body and live tally.
func (h *PostHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Preload("User").Where("pid = ?", pid).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, errNotFound("Post not found"))
			return
		}
		JSONError(c, err)
		return
	}

	var commentCount int64
	db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount)
	post.CommentCount = int(commentCount)

	views := int64(post.Views)
	if tracker := services.GetViewTracker(); tracker != nil {
		if n, err := tracker.ViewCount(c.Request.Context(), post.ID); err == nil {
			views = n
		}
	}

	data := postItem(post)
	data["content_html"] = utils.RenderMarkdown(post.Content)
	data["views"] = views
	data["author"] = gin.H{
		"username":   post.User.Username,
		"avatar_url": post.User.AvatarURL,
		"bio":        post.User.Bio,
	}

	c.JSON(http.StatusOK, gin.H{"post": data})
}

type updatePostRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// Update applies an author-only partial update.
func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		JSONError(c, errNotFound("Post not found"))
		return
	}
	if post.UserID != user.ID {
		JSONError(c, errForbidden("Not authorized to update this post"))
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, errInvalidArgument("Invalid request body"))
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil && *req.Content != "" {
		post.Content = *req.Content
	}
	if req.Tags != nil {
		post.SetTags(utils.NormalizeTags(*req.Tags))
	}

	if err := db.DB.Save(&post).Error; err != nil {
		JSONError(c, err)
		return
	}

	post.User = *user
	c.JSON(http.StatusOK, gin.H{"post": postItem(post)})
}

// Delete removes a post and its dependent rows. Author-only.
func (h *PostHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		JSONError(c, errNotFound("Post not found"))
		return
	}
	if post.UserID != user.ID {
		JSONError(c, errForbidden("Not authorized to delete this post"))
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostView{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		JSONError(c, err)
		return
	}

	if tracker := services.GetViewTracker(); tracker != nil {
		tracker.Forget(c.Request.Context(), post.ID)
	}
	utils.GetCache().Delete("posts:list:::1:8")

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// RecordView tracks one unique view per (post, user).
func (h *PostHandler) RecordView(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Select("id").Where("pid = ?", pid).First(&post).Error; err != nil {
		JSONError(c, errNotFound("Post not found"))
		return
	}

	tracker := services.GetViewTracker()
	if tracker == nil {
		JSONError(c, fmt.Errorf("view tracker not initialized"))
		return
	}

	firstView, err := tracker.RecordView(c.Request.Context(), post.ID, user.ID)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recorded": firstView})
}

// Views returns the unique view count for a post.
func (h *PostHandler) Views(c *gin.Context) {
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Select("id, views").Where("pid = ?", pid).First(&post).Error; err != nil {
		JSONError(c, errNotFound("Post not found"))
		return
	}

	views := int64(post.Views)
	if tracker := services.GetViewTracker(); tracker != nil {
		if n, err := tracker.ViewCount(c.Request.Context(), post.ID); err == nil {
			views = n
		}
	}

	c.JSON(http.StatusOK, gin.H{"views": views})
}
