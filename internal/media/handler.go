package media

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/httpx"
)

// 10 MB covers featured images comfortably.
const maxUploadBytes = 10 << 20

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

type Handler struct {
	store *Storage
}

func NewHandler(store *Storage) *Handler { return &Handler{store: store} }

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("parse upload: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExt[ext] {
		return fmt.Errorf("unsupported file type %q", ext)
	}

	key := fmt.Sprintf("uploads/%d/%s%s", uid, uuid.NewString(), ext)
	contentType := header.Header.Get("Content-Type")
	if err := h.store.Put(r.Context(), key, file, header.Size, contentType); err != nil {
		return fmt.Errorf("store upload: %w", err)
	}

	link, err := h.store.PresignGet(r.Context(), key, 7*24*time.Hour)
	if err != nil {
		return fmt.Errorf("presign: %w", err)
	}
	httpx.WriteJSON(w, map[string]string{"key": key, "url": link}, http.StatusCreated)
	return nil
}

func (h *Handler) Link(w http.ResponseWriter, r *http.Request) error {
	key := r.URL.Query().Get("key")
	if key == "" {
		return fmt.Errorf("query parameter key is required")
	}
	link, err := h.store.PresignGet(r.Context(), key, time.Hour)
	if err != nil {
		return httpx.ErrNotFound
	}
	httpx.WriteJSON(w, map[string]string{"url": link}, http.StatusOK)
	return nil
}
