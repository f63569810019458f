package notification

import (
	"net/http"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/httpx"
)

type Handler struct {
	svc       Service
	publicURL string
}

func NewHandler(s Service, publicURL string) *Handler {
	return &Handler{svc: s, publicURL: publicURL}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	items, count, err := h.svc.List(r.Context(), uid, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, items), http.StatusOK)
	return nil
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.MarkRead(r.Context(), uid, r.PathValue("notification_id")); err != nil {
		if err == ErrNotFound {
			return httpx.ErrNotFound
		}
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "notification marked as read"}, http.StatusOK)
	return nil
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.MarkAllRead(r.Context(), uid); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "all notifications marked as read"}, http.StatusOK)
	return nil
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	n, err := h.svc.UnreadCount(r.Context(), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]int64{"unread_count": n}, http.StatusOK)
	return nil
}
