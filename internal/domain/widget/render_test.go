package widget

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Closed(t *testing.T) {
	html, err := Render(State{})
	require.NoError(t, err)

	assert.Contains(t, html, `data-action="open"`)
	assert.Contains(t, html, "Ask a leadership question")
	assert.NotContains(t, html, "lsc-window")
}

func TestRender_EmptyConversation(t *testing.T) {
	html, err := Render(State{Open: true})
	require.NoError(t, err)

	assert.Contains(t, html, "Welcome to the Leadership Guide")
	assert.Contains(t, html, "Leadership Guide")
	assert.Contains(t, html, "Powered by Listerdale Strategy")
	assert.Contains(t, html, `placeholder="Ask about leadership..."`)
	assert.Contains(t, html, "AI-powered guidance based on Listerdale leadership frameworks")
	assert.Equal(t, len(Suggestions), strings.Count(html, `data-action="send"`))
	assert.Contains(t, html, "I&#39;m drowning in decisions and tasks")
	assert.NotContains(t, html, " disabled")
}

func TestRender_Messages(t *testing.T) {
	state := State{
		Open: true,
		Messages: []Message{
			{Role: "user", Content: "<b>help</b> with **feedback**"},
			{Role: "assistant", Content: "Try **SBI**.\n- Situation\n- Behaviour"},
		},
	}

	html, err := Render(state)
	require.NoError(t, err)

	assert.NotContains(t, html, "Welcome to the Leadership Guide")
	// 访客消息按纯文本输出
	assert.Contains(t, html, "&lt;b&gt;help&lt;/b&gt; with **feedback**")
	assert.Contains(t, html, "<strong>SBI</strong>")
	assert.Contains(t, html, "<li")
	assert.Equal(t, 1, strings.Count(html, "lsc-msg-user"))
	assert.Equal(t, 1, strings.Count(html, "lsc-msg-ai"))
}

func TestRender_Loading(t *testing.T) {
	html, err := Render(State{
		Open:     true,
		Loading:  true,
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(html, `class="lsc-typing-dot"`))
	assert.Contains(t, html, `id="lsc-send" disabled`)
}

func TestRender_LoadingWithoutMessagesShowsTyping(t *testing.T) {
	html, err := Render(State{Open: true, Loading: true})
	require.NoError(t, err)

	assert.NotContains(t, html, "Welcome to the Leadership Guide")
	assert.Contains(t, html, "lsc-typing")
}

func TestRender_UnknownRoleRendersAsAssistant(t *testing.T) {
	html, err := Render(State{Open: true, Messages: []Message{{Role: "system", Content: "x"}}})
	require.NoError(t, err)
	assert.Contains(t, html, "lsc-msg-ai")
}

func TestRender_TooManyMessages(t *testing.T) {
	msgs := make([]Message, MaxMessages+1)
	_, err := Render(State{Open: true, Messages: msgs})
	assert.Error(t, err)
}

func TestNewSessionID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := NewSessionID(now)

	assert.Regexp(t, regexp.MustCompile(`^ls-[0-9a-z]+-[0-9a-z]{8}$`), id)
	assert.True(t, strings.HasPrefix(id, "ls-loyw3v28-"), id)
	assert.NotEqual(t, id, NewSessionID(now))
}

func TestConnectionErrorReply(t *testing.T) {
	reply := ConnectionErrorReply("https://example.com/leadership/")
	assert.Equal(t, fmt.Sprintf("I'm having trouble connecting. Please visit [the leadership modules](%s) directly.", "https://example.com/leadership/"), reply)
}
