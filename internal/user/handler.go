package user

import (
	"net/http"
	"strconv"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/httpx"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/jwt"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[RegisterReq](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Register(body.Email, body.Password, body.Name)
	if err != nil {
		return err
	}
	token, _ := jwt.Make(u.ID)
	httpx.WriteJSON(w, map[string]any{
		"id": u.ID, "name": u.Name, "email": u.Email, "access_token": token,
	}, http.StatusCreated)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[LoginReq](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Login(body.Email, body.Password)
	if err != nil {
		return httpx.ErrUnauthorized
	}
	token, _ := jwt.Make(u.ID)
	httpx.WriteJSON(w, map[string]any{
		"message": "login successful", "id": u.ID, "name": u.Name, "email": u.Email, "access_token": token,
	}, http.StatusOK)
	return nil
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) error {
	uid, err := jwt.Parse(httpx.BearerToken(r))
	if err != nil {
		return httpx.ErrUnauthorized
	}
	httpx.WriteJSON(w, map[string]any{"id": uid}, http.StatusOK)
	return nil
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	u, err := h.svc.GetByID(uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, _ := strconv.ParseUint(r.PathValue("user_id"), 10, 64)
	u, err := h.svc.GetByID(id)
	if err != nil {
		return httpx.ErrNotFound
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	users, count, err := h.svc.List(r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"count": count, "results": users}, http.StatusOK)
	return nil
}

func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	p, err := h.svc.GetProfile(uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpdateProfileReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	p, err := h.svc.UpdateProfile(uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}
