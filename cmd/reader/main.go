package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/kimanithuo1/backendCapstoneProject/internal/feed"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/logx"
)

// cardLines is the rendered height of one card; scroll metrics are measured
// in terminal lines.
const cardLines = 5

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			Width(72)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
)

// termSurface bridges the controller to the bubbletea program. Appends
// arrive from the fetch goroutine and are handed to the event loop as
// messages so the model is only ever touched there.
type termSurface struct {
	mu         sync.Mutex
	scrollPos  float64
	pageHeight float64
	handler    func()
	send       func(tea.Msg)
}

func (s *termSurface) ScrollMetrics() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollPos, s.pageHeight
}

func (s *termSurface) Append(p feed.Post) { s.send(appendMsg{post: p}) }

func (s *termSurface) ObserveScroll(h func()) { s.handler = h }

func (s *termSurface) update(scrollPos, pageHeight float64) {
	s.mu.Lock()
	s.scrollPos = scrollPos
	s.pageHeight = pageHeight
	h := s.handler
	s.mu.Unlock()
	if h != nil {
		h()
	}
}

type appendMsg struct{ post feed.Post }

type firstPageMsg struct {
	posts []feed.Post
	err   error
}

type model struct {
	client  *feed.APIClient
	ctrl    *feed.Controller
	surface *termSurface

	posts  []feed.Post
	offset int
	height int
	err    error
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		pg, err := m.client.FetchPage(context.Background(), 1)
		return firstPageMsg{posts: pg.Results, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case firstPageMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.posts = append(m.posts, msg.posts...)

	case appendMsg:
		m.posts = append(m.posts, msg.post)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "down", "j":
			m.offset++
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "pgdown", " ":
			m.offset += m.height
		case "pgup":
			m.offset -= m.height
			if m.offset < 0 {
				m.offset = 0
			}
		}
		m.clampOffset()
		m.surface.update(float64(m.offset+m.height), float64(m.totalLines()))
	}
	return m, nil
}

func (m *model) totalLines() int { return len(m.posts) * cardLines }

func (m *model) clampOffset() {
	max := m.totalLines() - m.height
	if max < 0 {
		max = 0
	}
	if m.offset > max {
		m.offset = max
	}
}

func (m model) View() string {
	if m.err != nil {
		return "failed to load feed: " + m.err.Error() + "\n"
	}
	var b strings.Builder
	for _, p := range m.posts {
		b.WriteString(renderCard(p))
		b.WriteByte('\n')
	}
	lines := strings.Split(b.String(), "\n")
	top := m.offset
	if top > len(lines) {
		top = len(lines)
	}
	// The first render happens before the WindowSizeMsg arrives, so height
	// can still be zero here.
	bottom := top + m.height - 1
	if bottom < top {
		bottom = top
	}
	if bottom > len(lines) {
		bottom = len(lines)
	}
	view := strings.Join(lines[top:bottom], "\n")

	status := fmt.Sprintf("%d posts", len(m.posts))
	if m.ctrl.Loading() {
		status += " · loading more..."
	} else if !m.ctrl.HasMore() {
		status += " · end of feed"
	}
	return view + "\n" + statusStyle.Render(status)
}

func renderCard(p feed.Post) string {
	date := ""
	if p.PublishedDate != nil {
		date = p.PublishedDate.Format("Jan 2, 2006")
	}
	meta := metaStyle.Render(fmt.Sprintf("%s · %s · %s", p.Author, p.CategoryName, date))
	stats := metaStyle.Render(fmt.Sprintf("%d views · %d likes · %d comments",
		p.ViewsCount, p.LikesCount, p.CommentsCount))
	return cardStyle.Render(
		titleStyle.Render(p.Title) + "\n" +
			meta + "\n" +
			feed.TruncateExcerpt(p.Excerpt) + "\n" +
			stats,
	)
}

func main() {
	_ = godotenv.Load()
	log := logx.New("blog-reader")

	base := os.Getenv("BLOG_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	client := feed.NewAPIClient(base)
	surface := &termSurface{}
	ctrl := feed.NewController(client, log)

	m := model{client: client, ctrl: ctrl, surface: surface}
	p := tea.NewProgram(m, tea.WithAltScreen())
	surface.send = p.Send
	ctrl.Initialize(surface)

	if _, err := p.Run(); err != nil {
		log.Fatal().Err(err).Msg("reader")
	}
}
