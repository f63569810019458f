package category

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	if _, err := httpx.UserFromCtx(r); err != nil {
		return err
	}
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	c, err := h.svc.Create(in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, c, http.StatusCreated)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	cats, count, err := h.svc.List(r.URL.Query().Get("search"), r.URL.Query().Get("ordering"), limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, cats), http.StatusOK)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, _ := strconv.ParseUint(r.PathValue("category_id"), 10, 64)
	c, err := h.svc.GetByID(id)
	if err != nil {
		return httpx.ErrNotFound
	}
	httpx.WriteJSON(w, c, http.StatusOK)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	if _, err := httpx.UserFromCtx(r); err != nil {
		return err
	}
	id, _ := strconv.ParseUint(r.PathValue("category_id"), 10, 64)
	in, err := httpx.Decode[UpdateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	c, err := h.svc.Update(id, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, c, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	if _, err := httpx.UserFromCtx(r); err != nil {
		return err
	}
	id, _ := strconv.ParseUint(r.PathValue("category_id"), 10, 64)
	if err := h.svc.Delete(id); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "category deleted"}, http.StatusOK)
	return nil
}
