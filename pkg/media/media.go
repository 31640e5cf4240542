package media

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"go-social-backend/pkg/apperror"
	"go-social-backend/pkg/logger"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// Media classes supported for post attachments.
const (
	ClassImage = "image"
	ClassVideo = "video"
	ClassGIF   = "gif"
)

const thumbnailDir = "thumbnails"

// Allowed extensions per media class (strict whitelist).
var allowedExtensions = map[string]map[string]bool{
	ClassImage: {".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true},
	ClassVideo: {".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true, ".webm": true},
	ClassGIF:   {".gif": true},
}

// Per-class size ceilings. These override the generic framework upload limit.
var maxFileSizes = map[string]int64{
	ClassImage: 10 * 1024 * 1024,  // 10MB
	ClassVideo: 100 * 1024 * 1024, // 100MB
	ClassGIF:   20 * 1024 * 1024,  // 20MB
}

// Allowed sniffed MIME types per class. Video containers that
// http.DetectContentType cannot identify come back as octet-stream, so that
// is accepted for the video class only (the extension whitelist still holds).
var allowedMIMETypes = map[string]map[string]bool{
	ClassImage: {"image/jpeg": true, "image/png": true, "image/gif": true, "image/webp": true},
	ClassVideo: {"video/mp4": true, "video/avi": true, "video/webm": true, "application/octet-stream": true},
	ClassGIF:   {"image/gif": true},
}

// Handler validates, stores, and removes uploaded media files under a
// single uploads root with per-class subdirectories.
type Handler struct {
	root string
}

func NewHandler(root string) *Handler {
	return &Handler{root: root}
}

// Info describes a stored media file.
type Info struct {
	Filename  string                 `json:"filename"`
	URL       string                 `json:"url"`
	MediaType string                 `json:"media_type"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// IsValidClass reports whether mediaType names a supported media class.
func IsValidClass(mediaType string) bool {
	_, ok := allowedExtensions[mediaType]
	return ok
}

// Validate checks an upload against the class extension whitelist, the
// per-class size ceiling, and the sniffed content type. A file whose content
// does not match its claimed class is rejected as spoofed.
func (h *Handler) Validate(filename string, data []byte, class string) error {
	exts, ok := allowedExtensions[class]
	if !ok {
		return apperror.BadRequest(fmt.Sprintf("Invalid media type. Allowed: %s, %s, %s", ClassImage, ClassVideo, ClassGIF))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !exts[ext] {
		return apperror.BadRequest(fmt.Sprintf("File type not allowed for %s", class))
	}

	if int64(len(data)) > maxFileSizes[class] {
		return apperror.BadRequest(fmt.Sprintf("File too large. Max size: %dMB", maxFileSizes[class]/(1024*1024)))
	}

	contentType := sniffMIME(data)
	if !allowedMIMETypes[class][contentType] {
		return apperror.BadRequest(fmt.Sprintf("Invalid file content. Expected %s, got %s", class, contentType))
	}

	return nil
}

// Save writes the file under the class subdirectory with a unique
// timestamp+random name. Images additionally get dimension metadata and a
// bounded thumbnail; thumbnail failures never fail the upload.
func (h *Handler) Save(originalFilename string, data []byte, class string) (*Info, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	filename := uniqueFilename(ext)

	classDir := filepath.Join(h.root, class)
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		return nil, apperror.Internal(err)
	}

	path := filepath.Join(classDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, apperror.Internal(err)
	}

	metadata := map[string]interface{}{
		"file_size":   len(data),
		"uploaded_at": time.Now().Format(time.RFC3339),
	}

	if class == ClassImage {
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			metadata["error"] = fmt.Sprintf("Failed to process image: %v", err)
		} else {
			bounds := img.Bounds()
			metadata["width"] = bounds.Dx()
			metadata["height"] = bounds.Dy()
			metadata["format"] = format

			if err := h.writeThumbnail(filename, img, 300); err != nil {
				logger.Log.Warn("thumbnail generation failed", "file", filename, "error", err)
			}
		}
	}

	return &Info{
		Filename:  filename,
		URL:       fmt.Sprintf("/uploads/%s/%s", class, filename),
		MediaType: class,
		Metadata:  metadata,
	}, nil
}

// Delete removes the stored file for a media URL and its sibling thumbnail.
// Removal is best-effort: failures are logged and never propagated.
func (h *Handler) Delete(mediaURL string) {
	rel, ok := uploadsRelPath(mediaURL)
	if !ok {
		return
	}

	path := filepath.Join(h.root, rel)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn("failed to delete media file", "path", path, "error", err)
	}

	thumb := filepath.Join(h.root, thumbnailDir, thumbName(filepath.Base(rel)))
	if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn("failed to delete thumbnail", "path", thumb, "error", err)
	}
}

func (h *Handler) writeThumbnail(filename string, img image.Image, maxDimension int) error {
	thumbDir := filepath.Join(h.root, thumbnailDir)
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return err
	}

	resized := resizeToFit(img, maxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(thumbDir, thumbName(filename)), buf.Bytes(), 0o644)
}

// sniffMIME detects the content type from the leading bytes.
func sniffMIME(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType := http.DetectContentType(head)
	// DetectContentType may append charset parameters for text types
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return contentType
}

// uniqueFilename builds a collision-resistant name: 20240101_150405_a1b2c3d4.png
func uniqueFilename(ext string) string {
	timestamp := time.Now().Format("20060102_150405")
	uniqueID := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s%s", timestamp, uniqueID, ext)
}

// thumbName derives the thumbnail filename: picture.png -> picture_thumb.jpg
func thumbName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + "_thumb.jpg"
}

// uploadsRelPath maps a public media URL back to a path relative to the
// uploads root, rejecting anything that escapes it.
func uploadsRelPath(mediaURL string) (string, bool) {
	rel := strings.TrimPrefix(mediaURL, "/uploads/")
	if rel == mediaURL || rel == "" {
		return "", false
	}
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", false
	}
	return rel, true
}
