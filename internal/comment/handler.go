package comment

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

func pathID(r *http.Request, key string) uint64 {
	id, _ := strconv.ParseUint(r.PathValue(key), 10, 64)
	return id
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	v, err := h.svc.Create(r.Context(), pathID(r, "post_id"), uid, in)
	if err != nil {
		return mapErr(err)
	}
	httpx.WriteJSON(w, v, http.StatusCreated)
	return nil
}

func (h *Handler) ListByPost(w http.ResponseWriter, r *http.Request) error {
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	views, count, err := h.svc.ListByPost(pathID(r, "post_id"), limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, views), http.StatusOK)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpdateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	v, err := h.svc.Update(pathID(r, "comment_id"), uid, in)
	if err != nil {
		return mapErr(err)
	}
	httpx.WriteJSON(w, v, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(pathID(r, "comment_id"), uid); err != nil {
		return mapErr(err)
	}
	httpx.WriteJSON(w, map[string]string{"message": "comment deleted"}, http.StatusOK)
	return nil
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	views, count, err := h.svc.ListByAuthor(uid, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, views), http.StatusOK)
	return nil
}

func mapErr(err error) error {
	switch err {
	case ErrNotAuthor:
		return httpx.ErrForbidden
	case ErrNotFound:
		return httpx.ErrNotFound
	}
	return err
}
