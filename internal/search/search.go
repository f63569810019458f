package search

import (
	"fmt"
	"os"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// doc is the indexed shape of a post. Draft and archived posts are removed
// from the index rather than filtered at query time.
type doc struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
}

// Hit is one search result with highlighted fragments.
type Hit struct {
	PostID    uint64              `json:"post_id"`
	Score     float64             `json:"score"`
	Title     string              `json:"title"`
	Fragments map[string][]string `json:"fragments"`
}

type Index struct {
	idx bleve.Index
}

// Open opens the index at path, creating it with the post mapping on first
// use.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist || os.IsNotExist(err) {
		idx, err = bleve.New(path, buildMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	return &Index{idx: idx}, nil
}

func buildMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = en.AnalyzerName

	keyword := bleve.NewTextFieldMapping()

	post := bleve.NewDocumentMapping()
	post.AddFieldMappingsAt("title", text)
	post.AddFieldMappingsAt("body", text)
	post.AddFieldMappingsAt("author", keyword)
	post.AddFieldMappingsAt("tags", keyword)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = post
	return m
}

func (x *Index) Close() error { return x.idx.Close() }

func (x *Index) IndexPost(id uint64, title, content, authorName string, tags []string, published bool) error {
	key := strconv.FormatUint(id, 10)
	if !published {
		return x.idx.Delete(key)
	}
	return x.idx.Index(key, doc{Title: title, Body: content, Author: authorName, Tags: tags})
}

func (x *Index) DeletePost(id uint64) error {
	return x.idx.Delete(strconv.FormatUint(id, 10))
}

// Search runs a match query over title and body with title boosted, falling
// back to fuzzy matching for near misses.
func (x *Index) Search(q string, limit, offset int) ([]Hit, uint64, error) {
	title := bleve.NewMatchQuery(q)
	title.SetField("title")
	title.SetBoost(2)

	body := bleve.NewMatchQuery(q)
	body.SetField("body")

	fuzzy := bleve.NewMatchQuery(q)
	fuzzy.SetField("body")
	fuzzy.SetFuzziness(1)

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(title, body, fuzzy), limit, offset, false)
	req.Fields = []string{"title"}
	req.Highlight = bleve.NewHighlight()

	res, err := x.idx.Search(req)
	if err != nil {
		return nil, 0, err
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.ParseUint(h.ID, 10, 64)
		if err != nil {
			continue
		}
		hit := Hit{PostID: id, Score: h.Score, Fragments: h.Fragments}
		if t, ok := h.Fields["title"].(string); ok {
			hit.Title = t
		}
		hits = append(hits, hit)
	}
	return hits, res.Total, nil
}
