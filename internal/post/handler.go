package post

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
	d, err := h.svc.Create(uid, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, d, http.StatusCreated)
	return nil
}

// List powers GET /api/posts/ with the filter/search/ordering surface and
// the page envelope the infinite-scroll client consumes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	f := ListFilter{
		Status:     r.URL.Query().Get("status"),
		AuthorID:   uint64(httpx.QueryInt(r, "author", 0)),
		CategoryID: uint64(httpx.QueryInt(r, "category", 0)),
		TagID:      uint64(httpx.QueryInt(r, "tag", 0)),
		Search:     r.URL.Query().Get("search"),
		Ordering:   r.URL.Query().Get("ordering"),
		ViewerID:   httpx.UserOrZero(r),
	}
	items, count, err := h.svc.List(f, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, items), http.StatusOK)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	d, err := h.svc.Get(pathID(r, "post_id"), httpx.UserOrZero(r))
	if err != nil {
		return httpx.ErrNotFound
	}
	httpx.WriteJSON(w, d, http.StatusOK)
	return nil
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) error {
	d, err := h.svc.GetBySlug(r.PathValue("slug"), httpx.UserOrZero(r))
	if err != nil {
		return httpx.ErrNotFound
	}
	httpx.WriteJSON(w, d, http.StatusOK)
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
	d, err := h.svc.Update(pathID(r, "post_id"), uid, in)
	if err != nil {
		return statusErr(err)
	}
	httpx.WriteJSON(w, d, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(pathID(r, "post_id"), uid); err != nil {
		return statusErr(err)
	}
	httpx.WriteJSON(w, map[string]string{"message": "post deleted"}, http.StatusOK)
	return nil
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	d, err := h.svc.Publish(r.Context(), pathID(r, "post_id"), uid)
	if err != nil {
		return statusErr(err)
	}
	httpx.WriteJSON(w, map[string]any{"message": "post published successfully", "post": d}, http.StatusOK)
	return nil
}

func (h *Handler) Unpublish(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	d, err := h.svc.Unpublish(pathID(r, "post_id"), uid)
	if err != nil {
		return statusErr(err)
	}
	httpx.WriteJSON(w, map[string]any{"message": "post unpublished successfully", "post": d}, http.StatusOK)
	return nil
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	d, err := h.svc.Archive(pathID(r, "post_id"), uid)
	if err != nil {
		return statusErr(err)
	}
	httpx.WriteJSON(w, map[string]any{"message": "post archived successfully", "post": d}, http.StatusOK)
	return nil
}

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	n, err := h.svc.Like(r.Context(), pathID(r, "post_id"), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"message": "post liked successfully", "likes_count": n}, http.StatusCreated)
	return nil
}

func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	n, err := h.svc.Unlike(pathID(r, "post_id"), uid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"message": "post unliked successfully", "likes_count": n}, http.StatusOK)
	return nil
}

func (h *Handler) MyLikes(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	items, count, err := h.svc.ListLikedBy(uid, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, items), http.StatusOK)
	return nil
}

func (h *Handler) Drafts(w http.ResponseWriter, r *http.Request) error {
	return h.mine(w, r, StatusDraft)
}

func (h *Handler) MyPosts(w http.ResponseWriter, r *http.Request) error {
	return h.mine(w, r, r.URL.Query().Get("status"))
}

func (h *Handler) mine(w http.ResponseWriter, r *http.Request, status string) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	f := ListFilter{ViewerID: uid, MineOnly: true, Status: status, Ordering: r.URL.Query().Get("ordering")}
	items, count, err := h.svc.List(f, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, items), http.StatusOK)
	return nil
}

func (h *Handler) Scheduled(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	f := ListFilter{ViewerID: uid, MineOnly: true, Status: StatusDraft, ScheduledOnly: true}
	items, count, err := h.svc.List(f, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, items), http.StatusOK)
	return nil
}

func (h *Handler) Published(w http.ResponseWriter, r *http.Request) error {
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	items, count, err := h.svc.List(ListFilter{Status: StatusPublished}, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, items), http.StatusOK)
	return nil
}

func (h *Handler) ByCategory(w http.ResponseWriter, r *http.Request) error {
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	f := ListFilter{CategoryID: pathID(r, "category_id"), Status: StatusPublished}
	items, count, err := h.svc.List(f, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, items), http.StatusOK)
	return nil
}

func (h *Handler) ByTag(w http.ResponseWriter, r *http.Request) error {
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	f := ListFilter{TagID: pathID(r, "tag_id"), Status: StatusPublished}
	items, count, err := h.svc.List(f, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, items), http.StatusOK)
	return nil
}

func (h *Handler) ByAuthor(w http.ResponseWriter, r *http.Request) error {
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	f := ListFilter{AuthorID: pathID(r, "user_id"), Status: StatusPublished}
	items, count, err := h.svc.List(f, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, httpx.NewPage(r, h.publicURL, count, page, pageSize, items), http.StatusOK)
	return nil
}

func (h *Handler) MostLiked(w http.ResponseWriter, r *http.Request) error {
	items, err := h.svc.MostLiked()
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, items, http.StatusOK)
	return nil
}

func (h *Handler) TopRated(w http.ResponseWriter, r *http.Request) error {
	items, err := h.svc.TopRated()
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, items, http.StatusOK)
	return nil
}

func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) error {
	items, err := h.svc.Trending()
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, items, http.StatusOK)
	return nil
}

func statusErr(err error) error {
	if err == ErrNotAuthor {
		return httpx.ErrForbidden
	}
	if err == ErrNotFound {
		return httpx.ErrNotFound
	}
	return err
}
