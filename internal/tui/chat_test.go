package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/chat"
	"github.com/Zachkp/portfolio/internal/profile"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	p, err := profile.Default()
	require.NoError(t, err)
	m := New(chat.New(p), Options{Pacing: chat.DefaultPacing(), Style: "notty"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func typeAndSend(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestNewOpensWithGreeting(t *testing.T) {
	m := newTestModel(t)
	turns := m.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, chat.RoleAssistant, turns[0].Role)
	assert.NotEmpty(t, turns[0].Content)
	assert.True(t, m.ready)
}

func TestSubmitShowsTypingThenReply(t *testing.T) {
	m := newTestModel(t)

	m, cmd := typeAndSend(t, m, "What are your skills?")
	require.NotNil(t, cmd)
	assert.True(t, m.thinking)
	assert.Empty(t, m.input.Value())
	assert.Len(t, m.Turns(), 2)
	assert.Contains(t, m.View(), "typing...")

	res := m.responder.Respond("What are your skills?")
	updated, _ := m.Update(replyMsg{result: res})
	m = updated.(Model)

	assert.False(t, m.thinking)
	turns := m.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, chat.Turn{Role: chat.RoleUser, Content: "What are your skills?"}, turns[1])
	assert.Equal(t, res.Text, turns[2].Content)
}

func TestEnterIgnoredWhileThinking(t *testing.T) {
	m := newTestModel(t)
	m, _ = typeAndSend(t, m, "hello")
	m, cmd := typeAndSend(t, m, "another")
	assert.Nil(t, cmd)
	assert.Len(t, m.Turns(), 2)
}

func TestEmptyInputIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m, cmd := typeAndSend(t, m, "   ")
	assert.Nil(t, cmd)
	assert.False(t, m.thinking)
	assert.Len(t, m.Turns(), 1)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}

	_, cmd := typeAndSend(t, m, "/quit")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderMarkdownFallsBackWithoutRenderer(t *testing.T) {
	m := newTestModel(t)
	m.renderer = nil
	assert.Equal(t, "**bold**\n", m.renderMarkdown("**bold**"))
}
