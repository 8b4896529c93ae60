package main

import (
	"github.com/fwojciec/docsite/mcp"
)

// Run executes the mcp command. It blocks until the client disconnects or
// the context is cancelled.
func (c *MCPCmd) Run(deps *Dependencies) error {
	s, err := mcp.NewServer(deps.Index, deps.Config.ContentPath, deps.Chatter)
	if err != nil {
		return err
	}
	if c.HTTP != "" {
		deps.Logger.Info("mcp server listening", "addr", c.HTTP)
		return s.RunHTTP(deps.Ctx, c.HTTP)
	}
	return s.Run(deps.Ctx)
}
