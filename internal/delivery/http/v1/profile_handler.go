package v1

import (
	"fmt"
	"io"
	"net/http"

	"go-social-backend/config"
	"go-social-backend/internal/delivery/http/response"
	"go-social-backend/internal/domain"
	"go-social-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
	cfg       *config.Config
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase, cfg *config.Config) {
	handler := &ProfileHandler{profileUC: profileUC, cfg: cfg}

	profile := protected.Group("/profile")
	{
		profile.GET("", handler.Get)
		profile.PUT("", handler.Update)
		profile.POST("/image", handler.UploadImage)
		profile.DELETE("", handler.Delete)
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	view, err := h.profileUC.Get(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile", view)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	userID := c.GetInt64(string(domain.KeyUserID))
	if err := h.profileUC.Update(c.Request.Context(), userID, patch); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", nil)
}

func (h *ProfileHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.Error(apperror.BadRequest("No image file provided"))
		return
	}

	// Generic framework-level ceiling; media classes have their own limits
	maxBytes := int64(h.cfg.MaxUploadMB) << 20
	if file.Size > maxBytes {
		c.Error(apperror.BadRequest(fmt.Sprintf("File too large. Max size: %dMB", h.cfg.MaxUploadMB)))
		return
	}

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

	userID := c.GetInt64(string(domain.KeyUserID))
	imageURL, err := h.profileUC.UploadImage(c.Request.Context(), userID, file.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile image uploaded successfully", gin.H{
		"image_url": imageURL,
	})
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	if err := h.profileUC.DeleteAccount(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Account deleted successfully", nil)
}
