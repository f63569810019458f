package rating

import (
	"net/http"
	"strconv"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/httpx"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/validate"
)

type Handler struct {
	svc       Service
	publicURL string
}

func NewHandler(s Service, publicURL string) *Handler {
	return &Handler{svc: s, publicURL: publicURL}
}

func postID(r *http.Request) uint64 {
	id, _ := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	return id
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpsertReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	v, err := h.svc.Create(r.Context(), postID(r), uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, v, http.StatusCreated)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpsertReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	v, err := h.svc.Update(postID(r), uid, in)
	if err != nil {
		if err == ErrNotFound {
			return httpx.ErrNotFound
		}
		return err
	}
	httpx.WriteJSON(w, v, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(postID(r), uid); err != nil {
		if err == ErrNotFound {
			return httpx.ErrNotFound
		}
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "rating deleted"}, http.StatusOK)
	return nil
}

func (h *Handler) ListByPost(w http.ResponseWriter, r *http.Request) error {
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	views, count, err := h.svc.ListByPost(postID(r), limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, views), http.StatusOK)
	return nil
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.svc.Stats(postID(r))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, stats, http.StatusOK)
	return nil
}
