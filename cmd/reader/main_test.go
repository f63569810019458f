package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/kimanithuo1/backendCapstoneProject/internal/feed"
)

func newTestModel(posts ...feed.Post) model {
	return model{
		ctrl:    feed.NewController(nil, zerolog.Nop()),
		surface: &termSurface{},
		posts:   posts,
	}
}

func TestViewBeforeFirstWindowSize(t *testing.T) {
	// The program renders once right after Init, before any WindowSizeMsg
	// has set the height.
	m := newTestModel()

	out := m.View()
	assert.Contains(t, out, "0 posts")

	when := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	m = newTestModel(feed.Post{Title: "First Post", Author: "Jane", PublishedDate: &when})
	out = m.View()
	assert.Contains(t, out, "1 posts")
}

func TestViewWindowsByOffsetAndHeight(t *testing.T) {
	m := newTestModel(
		feed.Post{Title: "Alpha", Author: "Jane"},
		feed.Post{Title: "Beta", Author: "Jane"},
	)
	m.height = cardLines + 1

	out := m.View()
	assert.Contains(t, out, "Alpha")
	assert.NotContains(t, out, "Beta")

	m.offset = cardLines + 1
	out = m.View()
	assert.Contains(t, out, "Beta")
}

func TestOffsetClampsToContent(t *testing.T) {
	m := newTestModel(feed.Post{Title: "Only", Author: "Jane"})
	m.height = 40

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	got := updated.(model)
	assert.Zero(t, got.offset)
}
