// Package tui provides an interactive terminal search surface over the
// documentation index, with an optional AI chat.
package tui

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/chat"
)

// UI strings.
const (
	SearchingText = "Searching..."
	AskAIText     = "Ask AI (Experimental)"
)

// maxVisibleItems bounds the result list height.
const maxVisibleItems = 8

type mode int

const (
	modeSearch mode = iota
	modeChat
)

// Messages.
type (
	indexMsg struct {
		docs []*docsite.Document
		err  error
	}

	debounceMsg struct {
		seq int
	}
)

// Option configures a Model.
type Option func(*Model)

// WithChat enables the "Ask AI" entry backed by sessions.
func WithChat(sessions *chat.Sessions) Option {
	return func(m *Model) {
		m.sessions = sessions
	}
}

// WithStyles replaces the default styles.
func WithStyles(s *Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithKeyMap replaces the default keybindings.
func WithKeyMap(km *KeyMap) Option {
	return func(m *Model) {
		m.keys = km
	}
}

// Model is the bubbletea model of the search surface.
type Model struct {
	ctx      context.Context
	index    docsite.IndexFetcher
	indexKey string
	sessions *chat.Sessions
	keys     *KeyMap
	styles   *Styles

	input     textinput.Model
	chatInput textinput.Model

	open   bool
	mode   mode
	dialog int
	cancel context.CancelFunc
	dctx   context.Context

	docs    []*docsite.Document
	loading bool
	loaded  bool
	err     error

	seq      int
	query    string
	searched bool
	results  []*docsite.QueryResult
	selected int

	session *chat.Session
	opened  *docsite.Document

	width, height int
}

// NewModel creates a closed search surface over the index stored under
// indexKey. The index is loaded once on Init.
func NewModel(ctx context.Context, index docsite.IndexFetcher, indexKey string, opts ...Option) *Model {
	m := &Model{
		ctx:      ctx,
		index:    index,
		indexKey: indexKey,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		input:    newInput("Search documentation..."),
		dctx:     ctx,
		width:    80,
		height:   24,
	}
	m.chatInput = newInput("Ask a follow-up question...")
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 60
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init starts loading the index so it is ready when the dialog opens.
func (m *Model) Init() tea.Cmd {
	return m.fetchIndex()
}

// Open reports whether the dialog is shown.
func (m *Model) Open() bool { return m.open }

// Opened returns the page selected last, or nil.
func (m *Model) Opened() *docsite.Document { return m.opened }

// Results returns the results for the current query.
func (m *Model) Results() []*docsite.QueryResult { return m.results }

// Session returns the active chat session, or nil.
func (m *Model) Session() *chat.Session { return m.session }

func (m *Model) fetchIndex() tea.Cmd {
	if m.loading || m.loaded {
		return nil
	}
	m.loading = true
	ctx, index, key := m.ctx, m.index, m.indexKey
	return func() tea.Msg {
		docs, err := index.FetchIndex(ctx, key)
		return indexMsg{docs: docs, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(20, msg.Width-10)
		m.chatInput.Width = max(20, msg.Width-10)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case indexMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.docs, m.loaded, m.err = msg.docs, true, nil
		if m.open && m.query != "" {
			m.search()
		}
		return m, nil

	case debounceMsg:
		if !m.open || msg.seq != m.seq {
			return m, nil
		}
		m.query = m.input.Value()
		m.search()
		return m, nil

	case chatTokenMsg:
		if msg.dialog != m.dialog {
			return m, nil
		}
		return m, waitForChat(msg.ch)

	case chatDoneMsg:
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}

	if !m.open {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			return m.openDialog()
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		}
		return nil
	}

	if key.Matches(msg, m.keys.Close, m.keys.Toggle) {
		m.closeDialog()
		return nil
	}

	if m.mode == modeChat {
		return m.handleChatKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.selected = max(0, m.selected-1)
		return nil
	case key.Matches(msg, m.keys.Down):
		m.selected = min(max(0, m.itemCount()-1), m.selected+1)
		return nil
	case key.Matches(msg, m.keys.Select):
		return m.activate()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}

	m.seq++
	seq := m.seq
	return tea.Batch(cmd, tea.Tick(docsite.DebounceInterval, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	}))
}

func (m *Model) openDialog() tea.Cmd {
	m.open = true
	m.mode = modeSearch
	m.dialog++
	m.dctx, m.cancel = context.WithCancel(m.ctx)
	m.input.Focus()
	if m.err != nil {
		return m.fetchIndex()
	}
	return nil
}

// closeDialog hides the dialog and resets the query and chat view. An
// in-flight chat stream is cancelled on a best-effort basis.
func (m *Model) closeDialog() {
	if m.cancel != nil {
		m.cancel()
	}
	m.open = false
	m.mode = modeSearch
	m.seq++
	m.input.Reset()
	m.input.Blur()
	m.chatInput.Reset()
	m.chatInput.Blur()
	m.query = ""
	m.searched = false
	m.results = nil
	m.selected = 0
	m.session = nil
}

func validQuery(q string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(q)) >= docsite.MinQueryLength
}

// search runs the query engine once the index is available.
func (m *Model) search() {
	m.selected = 0
	if !validQuery(m.query) || !m.loaded {
		m.results, m.searched = nil, false
		return
	}
	m.results = docsite.Search(m.docs, m.query)
	m.searched = true
}

func (m *Model) chatEnabled() bool {
	return m.sessions != nil && validQuery(m.query)
}

func (m *Model) itemCount() int {
	n := len(m.results)
	if m.chatEnabled() {
		n++
	}
	return n
}

func (m *Model) activate() tea.Cmd {
	i := m.selected
	if m.chatEnabled() {
		if i == 0 {
			return m.startChat()
		}
		i--
	}
	if i < 0 || i >= len(m.results) {
		return nil
	}
	doc := m.results[i].Document
	m.closeDialog()
	m.opened = &doc
	return nil
}

// View renders the surface.
func (m *Model) View() string {
	if !m.open {
		return m.closedView()
	}
	if m.mode == modeChat {
		return m.styles.Dialog.Render(m.chatView())
	}
	return m.styles.Dialog.Render(m.searchView())
}

func (m *Model) closedView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Documentation"))
	b.WriteString("\n\n")
	if m.opened != nil {
		b.WriteString(m.styles.Selected.Render(m.opened.Title))
		b.WriteString("\n")
		b.WriteString(m.styles.URL.Render(m.opened.URL))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(max(20, m.width-2)).Render(truncate(m.opened.Content, 600)))
		b.WriteString("\n\n")
	}
	b.WriteString(helpLine(m.styles, m.keys.Toggle, m.keys.Quit))
	return b.String()
}

func (m *Model) searchView() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	current := m.input.Value()
	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Failed to load search index: " + docsite.ErrorMessage(m.err)))
	case !validQuery(current):
		b.WriteString(m.styles.Muted.Render(docsite.ShortQueryMessage))
	case !m.searched || current != m.query:
		b.WriteString(m.styles.Muted.Render(SearchingText))
	default:
		b.WriteString(m.itemsView())
	}

	b.WriteString("\n\n")
	b.WriteString(helpLine(m.styles, m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Close))
	return b.String()
}

func (m *Model) itemsView() string {
	var lines []string
	offset := 0
	if m.chatEnabled() {
		offset = 1
		lines = append(lines, m.itemLine(0, m.styles.Bot.Render(AskAIText)+" "+m.styles.Muted.Render(`"`+m.query+`"`)))
	}

	if len(m.results) == 0 {
		lines = append(lines, m.styles.Muted.Render(docsite.NoResultsMessage))
		return strings.Join(lines, "\n")
	}

	start := max(0, m.selected-offset-maxVisibleItems+1)
	end := min(len(m.results), start+maxVisibleItems)
	for i := start; i < end; i++ {
		r := m.results[i]
		item := m.highlight(r.Title, m.styles.Normal) + "  " + m.styles.URL.Render(r.URL) + "\n    " +
			m.highlight(truncate(r.Snippet, max(40, m.width-8)), m.styles.Muted)
		lines = append(lines, m.itemLine(i+offset, item))
	}
	if end < len(m.results) {
		lines = append(lines, m.styles.Muted.Render("  ..."))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) itemLine(i int, content string) string {
	if i == m.selected {
		return m.styles.Selected.Render("> ") + content
	}
	return "  " + content
}

// highlight renders text with every occurrence of the query marked.
func (m *Model) highlight(text string, base lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range docsite.Highlight(text, strings.TrimSpace(m.query)) {
		if seg.Match {
			b.WriteString(m.styles.Match.Render(seg.Text))
			continue
		}
		b.WriteString(base.Render(seg.Text))
	}
	return b.String()
}

// truncate cuts s to n characters, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + docsite.Ellipsis
}
