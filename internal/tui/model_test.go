package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"errkb/internal/chat"
)

type handlerFunc func(ctx context.Context, msg chat.Message) string

func (f handlerFunc) Handle(ctx context.Context, msg chat.Message) string { return f(ctx, msg) }

func TestModel_SendsMessageAndShowsReply(t *testing.T) {
	t.Parallel()

	var got chat.Message
	h := handlerFunc(func(_ context.Context, msg chat.Message) string {
		got = msg
		return "Original:\nORA-00942: table or view does not exist"
	})
	var m tea.Model = New(context.Background(), h, "local", "ORA-")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	model := m.(Model)
	model.input.SetValue("  ora-00942 ")
	m, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.(Model).waiting)
	assert.Empty(t, m.(Model).input.Value())

	m, _ = m.Update(cmd())

	model = m.(Model)
	assert.Equal(t, chat.Message{SenderID: "local", Text: "ora-00942"}, got)
	assert.False(t, model.waiting)
	require.Len(t, model.transcript, 2)
	assert.True(t, model.transcript[0].fromUser)
	assert.Equal(t, "Original:\nORA-00942: table or view does not exist", model.transcript[1].text)
	assert.Contains(t, model.View(), "table or view does not exist")
}

func TestModel_IgnoresBlankInput(t *testing.T) {
	t.Parallel()

	h := handlerFunc(func(context.Context, chat.Message) string {
		t.Fatal("handler must not be called")
		return ""
	})
	m := New(context.Background(), h, "local", "ORA-")
	m.input.SetValue("   ")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, next.(Model).transcript)
}

func TestHighlightCodes_KeepsText(t *testing.T) {
	t.Parallel()

	m := New(context.Background(), nil, "local", "ORA-")

	out := highlightCodes(m.codeRe, "see ora-00904 and ORA-00942")

	assert.Contains(t, out, "ora-00904")
	assert.Contains(t, out, "ORA-00942")
	assert.Contains(t, out, "see ")
}
