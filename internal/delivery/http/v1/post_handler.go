package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go-social-backend/internal/delivery/http/response"
	"go-social-backend/internal/domain"
	"go-social-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUC domain.PostUsecase
}

func NewPostHandler(public *gin.RouterGroup, protected *gin.RouterGroup, postUC domain.PostUsecase) {
	handler := &PostHandler{postUC: postUC}

	// PUBLIC routes - reading a single post, liking, and aggregates
	publicPosts := public.Group("/posts")
	{
		publicPosts.GET("/categories", handler.Categories)
		publicPosts.GET("/popular-tags", handler.PopularTags)
		publicPosts.GET("/stats", handler.Stats)
		publicPosts.GET("/:id", handler.Get)
		publicPosts.POST("/:id/like", handler.Like)
	}

	// PROTECTED routes - the feed and all mutations
	protectedPosts := protected.Group("/posts")
	{
		protectedPosts.GET("", handler.List)
		protectedPosts.POST("", handler.Create)
		protectedPosts.PUT("/:id", handler.Update)
		protectedPosts.DELETE("/:id", handler.Delete)
	}
}

func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	filter := domain.PostFilter{
		Search:     c.Query("search"),
		Visibility: c.Query("visibility"),
		SortBy:     c.DefaultQuery("sort_by", "created_at"),
		SortOrder:  c.DefaultQuery("sort_order", "desc"),
		Page:       page,
		PerPage:    perPage,
	}

	if raw := c.Query("user_id"); raw != "" {
		if userID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.UserID = &userID
		}
	}
	if raw := c.Query("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	result, err := h.postUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post list", result)
}

func (h *PostHandler) Create(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	input := domain.CreatePostInput{
		Content: c.PostForm("content"),
	}

	if title := c.PostForm("title"); title != "" {
		input.Title = &title
	}
	if raw := c.PostForm("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.Tags); err != nil {
			c.Error(apperror.BadRequest("Tags must be a JSON array of strings"))
			return
		}
	}

	if file, err := c.FormFile("media"); err == nil {
		src, err := file.Open()
		if err != nil {
			c.Error(apperror.Internal(err))
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.Error(apperror.Internal(err))
			return
		}

		input.MediaFilename = file.Filename
		input.MediaData = data
		input.MediaType = c.DefaultPostForm("media_type", "image")
	}

	post, err := h.postUC.Create(c.Request.Context(), userID, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Post created", gin.H{"post": post})
}

func (h *PostHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	post, err := h.postUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post details", gin.H{"post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var patch domain.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	userID := c.GetInt64(string(domain.KeyUserID))
	post, err := h.postUC.Update(c.Request.Context(), id, userID, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post updated", gin.H{"post": post})
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	userID := c.GetInt64(string(domain.KeyUserID))
	if err := h.postUC.Delete(c.Request.Context(), id, userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post deleted", nil)
}

func (h *PostHandler) Like(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	likes, err := h.postUC.Like(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Post liked", gin.H{"likes_count": likes})
}

func (h *PostHandler) Categories(c *gin.Context) {
	tags, err := h.postUC.Categories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post categories", gin.H{"categories": tags})
}

func (h *PostHandler) PopularTags(c *gin.Context) {
	tags, err := h.postUC.PopularTags(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Popular tags", gin.H{"tags": tags})
}

func (h *PostHandler) Stats(c *gin.Context) {
	stats, err := h.postUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post stats", stats)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.BadRequest("Invalid post ID")
	}
	return id, nil
}
