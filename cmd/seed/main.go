package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Seeds the running API with demo users, categories, tags, posts and
// engagement so the listing page has something to scroll through.

var (
	baseURL = envOr("BLOG_API_URL", "http://localhost:8080")
	client  = &http.Client{Timeout: 10 * time.Second}
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	// A handful of authors, each with a login token.
	tokens := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		email := gofakeit.Email()
		register(email, "password123", gofakeit.Name())
		tok := login(email, "password123")
		if tok == "" {
			log.Fatal("could not obtain token, aborting")
		}
		tokens = append(tokens, tok)
	}

	catIDs := make([]uint64, 0, 4)
	for _, name := range []string{"Programming", "Travel", "Food", "Science"} {
		if id := createCategory(tokens[0], name); id != 0 {
			catIDs = append(catIDs, id)
		}
	}

	tagIDs := make([]uint64, 0, 6)
	for i := 0; i < 6; i++ {
		if id := createTag(tokens[0], gofakeit.Word()); id != 0 {
			tagIDs = append(tagIDs, id)
		}
	}

	// Enough published posts to fill several feed pages.
	postIDs := make([]uint64, 0, 40)
	for i := 0; i < 40; i++ {
		tok := tokens[i%len(tokens)]
		id := createPost(tok, catIDs[i%len(catIDs)], pick(tagIDs, 2))
		if id == 0 {
			continue
		}
		publish(tok, id)
		postIDs = append(postIDs, id)
	}

	for _, id := range postIDs {
		for _, tok := range tokens {
			if gofakeit.Bool() {
				like(tok, id)
			}
			if gofakeit.Number(0, 3) == 0 {
				comment(tok, id)
			}
			if gofakeit.Number(0, 4) == 0 {
				rate(tok, id)
			}
		}
	}

	log.Printf("seeded %d users, %d categories, %d posts", len(tokens), len(catIDs), len(postIDs))
}

func pick(ids []uint64, n int) []uint64 {
	if len(ids) == 0 {
		return nil
	}
	out := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ids[gofakeit.Number(0, len(ids)-1)])
	}
	return out
}

func do(method, path, token string, payload any) map[string]any {
	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Printf("%s %s: marshal: %v", method, path, err)
			return nil
		}
		body = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		log.Printf("%s %s: %v", method, path, err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := client.Do(req)
	if err != nil {
		log.Printf("%s %s: %v", method, path, err)
		return nil
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		log.Printf("%s %s: status %d", method, path, res.StatusCode)
		return nil
	}
	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return out
}

func idOf(m map[string]any, key string) uint64 {
	if m == nil {
		return 0
	}
	if f, ok := m[key].(float64); ok {
		return uint64(f)
	}
	return 0
}

func register(email, password, name string) {
	do(http.MethodPost, "/api/users/register", "", map[string]string{
		"email": email, "password": password, "name": name,
	})
}

func login(email, password string) string {
	res := do(http.MethodPost, "/api/users/login", "", map[string]string{
		"email": email, "password": password,
	})
	if res == nil {
		return ""
	}
	tok, _ := res["access_token"].(string)
	return tok
}

func createCategory(token, name string) uint64 {
	return idOf(do(http.MethodPost, "/api/categories/", token, map[string]string{
		"name":        name,
		"description": gofakeit.Sentence(8),
	}), "id")
}

func createTag(token, name string) uint64 {
	return idOf(do(http.MethodPost, "/api/tags/", token, map[string]string{"name": name}), "id")
}

func createPost(token string, categoryID uint64, tagIDs []uint64) uint64 {
	return idOf(do(http.MethodPost, "/api/posts/", token, map[string]any{
		"title":    gofakeit.Sentence(5),
		"content":  gofakeit.Paragraph(3, 5, 12, " "),
		"category": categoryID,
		"tag_ids":  tagIDs,
	}), "id")
}

func publish(token string, postID uint64) {
	do(http.MethodPost, fmt.Sprintf("/api/posts/%d/publish", postID), token, nil)
}

func like(token string, postID uint64) {
	do(http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), token, nil)
}

func comment(token string, postID uint64) {
	do(http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), token, map[string]string{
		"content": gofakeit.Sentence(10),
	})
}

func rate(token string, postID uint64) {
	do(http.MethodPost, fmt.Sprintf("/api/posts/%d/ratings", postID), token, map[string]any{
		"rating": gofakeit.Number(1, 5),
		"review": gofakeit.Sentence(6),
	})
}
