package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docsite"
	"github.com/fwojciec/docsite/cache"
	"github.com/fwojciec/docsite/chat"
	dshttp "github.com/fwojciec/docsite/http"
	dsslog "github.com/fwojciec/docsite/slog"
	"github.com/fwojciec/docsite/tui"
)

// Run executes the tui command.
func (c *TUICmd) Run(deps *Dependencies) error {
	index, key, chatter := deps.Index, deps.Config.ContentPath, deps.Chatter
	if c.Remote != "" {
		client := dshttp.NewIndexClient(c.Remote)
		index = cache.NewIndexCache(dsslog.NewLoggingIndexFetcher(client, deps.Logger))
		key = deps.Config.SearchAPIPath
		chatter = dshttp.NewChatClient(c.Remote, deps.Config.AIChatAPIPath)
	}

	var opts []tui.Option
	if chatter != nil {
		sessions := chat.NewSessions(chatter)
		if deps.Transcripts != nil {
			sessions.OnComplete(func(question string) docsite.CompletionFunc {
				return chat.RecordTranscript(deps.Transcripts, question, deps.Provider)
			})
		}
		opts = append(opts, tui.WithChat(sessions))
	}

	model := tui.NewModel(deps.Ctx, index, key, opts...)
	p := tea.NewProgram(model,
		tea.WithContext(deps.Ctx),
		tea.WithOutput(deps.Stdout),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}

	if doc := model.Opened(); doc != nil {
		fmt.Fprintf(deps.Stdout, "%s\n%s\n", doc.Title, joinURL(deps.SiteURL, doc.URL))
	}
	return nil
}
