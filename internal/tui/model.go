package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vichi100/style-api-server/internal/vectorstore"
)

// RetrieverPort is the TUI-facing subset of the scoring engine.
type RetrieverPort interface {
	Retrieve(ctx context.Context, query string, limit int, sourceFilter string) ([]vectorstore.Hit, error)
}

// Model is the Bubble Tea model for the rule-explorer TUI.
type Model struct {
	retriever RetrieverPort
	input     textinput.Model
	viewport  viewport.Model
	hits      []vectorstore.Hit
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance. The summary line describes the
// loaded corpus.
func New(retriever RetrieverPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe an outfit and press Enter (prefix source=<file.json> to filter)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{retriever: retriever, input: ti, viewport: vp, summary: summary, status: "Index ready. Type to search rules."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentHit())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				query, source := splitSourceFilter(q)
				hits, err := m.retriever.Retrieve(context.Background(), query, 10, source)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.hits = nil
				} else {
					if source != "" {
						m.status = fmt.Sprintf("Rules for %q in %s", query, source)
					} else {
						m.status = fmt.Sprintf("Rules for %q", query)
					}
					m.hits = hits
					m.cursor = 0
					m.lastQuery = query
				}
				m.viewport.SetContent(m.renderCurrentHit())
				return m, nil
			}
		case "down":
			if len(m.hits) > 0 {
				m.cursor = (m.cursor + 1) % len(m.hits)
				m.viewport.SetContent(m.renderCurrentHit())
				return m, nil
			}
		case "up":
			if len(m.hits) > 0 {
				m.cursor = (m.cursor - 1 + len(m.hits)) % len(m.hits)
				m.viewport.SetContent(m.renderCurrentHit())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current hit.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Fashion Rule Explorer")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentHit() string {
	if len(m.hits) == 0 {
		return "No matching rules yet."
	}
	h := m.hits[m.cursor]
	title := fmt.Sprintf("Rule %d/%d  source=%s  similarity=%.3f", m.cursor+1, len(m.hits), h.Source, h.Similarity)
	body := highlightOverlap(h.Text, m.lastQuery)
	return title + "\n\n" + body
}

// splitSourceFilter peels an optional "source=<file>" prefix off a query.
func splitSourceFilter(q string) (query, source string) {
	if rest, ok := strings.CutPrefix(q, "source="); ok {
		parts := strings.SplitN(rest, " ", 2)
		if len(parts) == 2 {
			return strings.TrimSpace(parts[1]), parts[0]
		}
		return "", parts[0]
	}
	return q, ""
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	unicodeWordRe  = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

// highlightOverlap emphasizes the query tokens inside a rule fragment.
func highlightOverlap(text, query string) string {
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return text
	}
	return unicodeWordRe.ReplaceAllStringFunc(text, func(word string) string {
		if _, ok := qTokens[strings.ToLower(word)]; ok {
			return highlightStyle.Render(word)
		}
		return word
	})
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}
