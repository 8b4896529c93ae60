package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/chat"
)

type (
	chatTokenMsg struct {
		dialog int
		token  string
		ch     <-chan tea.Msg
	}

	chatDoneMsg struct {
		dialog int
		err    error
	}
)

// startChat switches to the chat view for the current query. The session
// is shared with any earlier chat for the same query, so the seed question
// is only ever submitted once.
func (m *Model) startChat() tea.Cmd {
	m.session = m.sessions.Open(m.query)
	m.mode = modeChat
	m.input.Blur()
	m.chatInput.Focus()

	session := m.session
	if session.Seeded() {
		return nil
	}
	return m.stream(func(ctx context.Context, onToken func(string)) error {
		_, err := session.Seed(ctx, onToken)
		return err
	})
}

func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, m.keys.Select) {
		var cmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(msg)
		return cmd
	}

	text := strings.TrimSpace(m.chatInput.Value())
	if text == "" {
		return nil
	}
	if status, _ := m.session.Status(); status == chat.StatusStreaming {
		return nil
	}
	m.chatInput.Reset()

	session := m.session
	return m.stream(func(ctx context.Context, onToken func(string)) error {
		return session.Submit(ctx, text, onToken)
	})
}

// stream runs a session submission in the background and feeds its tokens
// back into the update loop. Sends give up once the dialog is closed.
func (m *Model) stream(run func(ctx context.Context, onToken func(string)) error) tea.Cmd {
	ctx, dialog := m.dctx, m.dialog
	ch := make(chan tea.Msg, 16)
	send := func(msg tea.Msg) {
		select {
		case ch <- msg:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(ch)
		err := run(ctx, func(tok string) {
			send(chatTokenMsg{dialog: dialog, token: tok, ch: ch})
		})
		send(chatDoneMsg{dialog: dialog, err: err})
	}()

	return waitForChat(ch)
}

func waitForChat(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) chatView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(AskAIText))
	b.WriteString("\n\n")

	status, err := m.session.Status()
	for _, msg := range m.session.Messages() {
		switch msg.Role {
		case docsite.RoleUser:
			b.WriteString(m.styles.User.Render("You: "))
		default:
			b.WriteString(m.styles.Bot.Render("AI: "))
		}
		content := msg.Content
		if content == "" && status == chat.StatusStreaming {
			content = m.styles.Muted.Render("...")
		}
		b.WriteString(content)
		b.WriteString("\n\n")
	}

	if status == chat.StatusError {
		b.WriteString(m.styles.Error.Render("Error: " + docsite.ErrorMessage(err) + ". Please try again."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.chatInput.View())
	b.WriteString("\n\n")
	b.WriteString(helpLine(m.styles, key.NewBinding(key.WithHelp("enter", "send")), m.keys.Close))
	return b.String()
}
