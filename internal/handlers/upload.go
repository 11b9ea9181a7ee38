package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/logging"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/media"
)

const (
	MaxImageSize = 5 << 20

	// Whole request cap: the file plus multipart framing and other fields.
	maxUploadBody = 2 * MaxImageSize
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadHandler struct {
	media MediaStore
	now   func() time.Time
}

func NewUploadHandler(store MediaStore) *UploadHandler {
	return &UploadHandler{media: store, now: time.Now}
}

type UploadResponse struct {
	URL          string `json:"url"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
}

// Upload validates type first and size second, then stores the raw bytes
// under media.ImagePrefix. The multipart body is streamed, so the type of
// the file part is known before any of its content is read.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	part, err := filePart(r)
	if err != nil {
		respondUploadError(w, err)
		return
	}
	defer part.Close()

	contentType := strings.ToLower(trim(part.Header.Get("Content-Type")))
	defaultExt, ok := allowedImageTypes[contentType]
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, WebP and GIF are allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(part, MaxImageSize+1))
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("read upload failed")
		respondUploadError(w, err)
		return
	}
	if len(body) > MaxImageSize {
		respondError(w, http.StatusBadRequest, "File too large. Maximum size is 5MB")
		return
	}

	originalName := part.FileName()
	fileName := h.fileName(originalName, defaultExt)
	url, err := h.media.Upload(r.Context(), media.ImageKey(fileName), body, contentType)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("file", fileName).Msg("image upload failed")
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	respondJSON(w, http.StatusOK, UploadResponse{
		URL:          url,
		FileName:     fileName,
		OriginalName: originalName,
		Size:         int64(len(body)),
		Type:         contentType,
	})
}

var errNoFile = errors.New("no file part")

// filePart advances the multipart reader to the first "file" part that
// carries a file name. Other parts are skipped unread.
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, errNoFile
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errNoFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == "file" && part.FileName() != "" {
			return part, nil
		}
		_ = part.Close()
	}
}

func respondUploadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusBadRequest, "File too large. Maximum size is 5MB")
		return
	}
	respondError(w, http.StatusBadRequest, "No file provided")
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fileName := trim(r.URL.Query().Get("fileName"))
	if fileName == "" {
		respondError(w, http.StatusBadRequest, "File name is required")
		return
	}
	if !validFileName(fileName) {
		respondError(w, http.StatusBadRequest, "Invalid file name")
		return
	}

	if err := h.media.Delete(r.Context(), media.ImageKey(fileName)); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("file", fileName).Msg("image delete failed")
		respondError(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Image deleted successfully"})
}

// fileName builds <unix millis>-<8 hex chars><ext>. The extension comes from
// the original name and falls back to the one implied by the content type.
func (h *UploadHandler) fileName(original, defaultExt string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" || len(ext) > 6 || strings.ContainsAny(ext, `/\ `) {
		ext = defaultExt
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s%s", h.now().UnixMilli(), suffix, ext)
}

func validFileName(name string) bool {
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
