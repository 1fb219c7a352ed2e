package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"errkb/internal/chat"
	"errkb/internal/tui"
)

// Run executes the chat command: a one-shot message with --message, the
// terminal console otherwise.
func (c *ChatCmd) Run(deps *Dependencies) error {
	sender := callerID(c.As, deps.Config)
	if c.Message != "" {
		fmt.Fprintln(deps.Stdout, deps.Handler.Handle(deps.Ctx, chat.Message{SenderID: sender, Text: c.Message}))
		return nil
	}

	m := tui.New(deps.Ctx, deps.Handler, sender, deps.Config.Source.Prefix)
	_, err := tea.NewProgram(m, tea.WithContext(deps.Ctx), tea.WithOutput(deps.Stdout), tea.WithAltScreen()).Run()
	return err
}
