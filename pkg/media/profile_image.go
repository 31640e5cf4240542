package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"go-social-backend/pkg/apperror"
	"go-social-backend/pkg/logger"
)

const (
	profileImageMaxDim = 800
	profileThumbMaxDim = 200
)

// SaveProfileImage validates and stores a profile picture at the uploads
// root. The image is re-encoded as a bounded JPEG and a small thumbnail is
// written next to it. Returns the public URL of the stored image.
func (h *Handler) SaveProfileImage(originalFilename string, data []byte, allowedExts []string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalFilename), "."))
	if ext == "" || !containsExt(allowedExts, ext) {
		return "", apperror.BadRequest("File type not allowed. Please upload PNG, JPG, JPEG, or GIF")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", apperror.BadRequest("Uploaded file is not a valid image")
	}

	if err := os.MkdirAll(h.root, 0o755); err != nil {
		return "", apperror.Internal(err)
	}

	// Stored as JPEG regardless of the source format
	filename := uniqueFilename(".jpg")
	path := filepath.Join(h.root, filename)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizeToFit(img, profileImageMaxDim), &jpeg.Options{Quality: 85}); err != nil {
		return "", apperror.Internal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", apperror.Internal(err)
	}

	var thumbBuf bytes.Buffer
	if err := jpeg.Encode(&thumbBuf, resizeToFit(img, profileThumbMaxDim), &jpeg.Options{Quality: 80}); err == nil {
		thumbPath := filepath.Join(h.root, thumbName(filename))
		if err := os.WriteFile(thumbPath, thumbBuf.Bytes(), 0o644); err != nil {
			logger.Log.Warn("failed to write profile thumbnail", "path", thumbPath, "error", err)
		}
	}

	return fmt.Sprintf("/uploads/%s", filename), nil
}

// DeleteProfileImage removes a previously stored profile picture and its
// thumbnail. Best-effort, like Delete.
func (h *Handler) DeleteProfileImage(imageURL string) {
	rel, ok := uploadsRelPath(imageURL)
	if !ok {
		return
	}

	path := filepath.Join(h.root, rel)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn("failed to delete profile image", "path", path, "error", err)
	}

	thumb := filepath.Join(h.root, thumbName(filepath.Base(rel)))
	if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn("failed to delete profile thumbnail", "path", thumb, "error", err)
	}
}

func containsExt(exts []string, ext string) bool {
	for _, e := range exts {
		if strings.EqualFold(strings.TrimPrefix(e, "."), ext) {
			return true
		}
	}
	return false
}
