package search

import (
	"net/http"
	"strings"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/httpx"
)

type Handler struct {
	idx *Index
}

func NewHandler(idx *Index) *Handler { return &Handler{idx: idx} }

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) error {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		return &emptyQueryErr{}
	}
	page, pageSize := httpx.PageParams(r)
	limit, offset := httpx.Offset(page, pageSize)
	hits, total, err := h.idx.Search(q, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{
		"query":   q,
		"count":   total,
		"results": hits,
	}, http.StatusOK)
	return nil
}

type emptyQueryErr struct{}

func (*emptyQueryErr) Error() string { return "query parameter q is required" }
