package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	appChat "github.com/listerdale/chatbot/internal/application/chat"
	"github.com/listerdale/chatbot/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "s3cret"

func newSessionRouter(env *testEnv) *gin.Engine {
	h := NewSessionHandler(env.chat)
	router := gin.New()
	sessions := router.Group("/api/sessions", middleware.AdminAuth(testAdminToken))
	sessions.GET("", h.List)
	sessions.GET("/:id", h.Get)
	sessions.GET("/:id/transcript", h.Transcript)
	sessions.DELETE("/:id", h.Delete)
	return router
}

func seedConversation(t *testing.T, env *testEnv, reply string) string {
	t.Helper()
	env.completer.reply = reply
	result, err := env.chat.SendMessage(context.Background(), appChat.SendRequest{Message: "<b>Help</b> me delegate"})
	require.NoError(t, err)
	return result.SessionID
}

func TestSessionHandler_RequiresToken(t *testing.T) {
	router := newSessionRouter(newTestEnv(t))

	status, _ := doJSON(t, router, http.MethodGet, "/api/sessions", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, router, http.MethodGet, "/api/sessions", nil, "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSessionHandler_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	router := newSessionRouter(env)
	id := seedConversation(t, env, "Try **one** task first.")
	seedConversation(t, env, "Second")

	status, body := doJSON(t, router, http.MethodGet, "/api/sessions?page=1&pageSize=1", nil, "Authorization", "Bearer "+testAdminToken)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)
	page := body["page"].(map[string]any)
	assert.EqualValues(t, 2, page["total"])
	assert.EqualValues(t, 2, page["pages"])

	status, body = doJSON(t, router, http.MethodGet, "/api/sessions/"+id, nil, "Authorization", "Bearer "+testAdminToken)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, id, data["session"].(map[string]any)["id"])
	assert.EqualValues(t, 2, data["session"].(map[string]any)["messageCount"])
	messages := data["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
	assert.Equal(t, "assistant", messages[1].(map[string]any)["role"])
}

func TestSessionHandler_Transcript(t *testing.T) {
	env := newTestEnv(t)
	router := newSessionRouter(env)
	id := seedConversation(t, env, "Try **one** task first.")

	status, body := doJSON(t, router, http.MethodGet, "/api/sessions/"+id+"/transcript", nil, "Authorization", "Bearer "+testAdminToken)
	require.Equal(t, http.StatusOK, status)
	html := body["data"].(map[string]any)["html"].(string)
	assert.Contains(t, html, "<strong>one</strong>")
	assert.Contains(t, html, "&lt;b&gt;Help&lt;/b&gt; me delegate")
	assert.NotContains(t, html, "<b>Help</b>")
}

func TestSessionHandler_Delete(t *testing.T) {
	env := newTestEnv(t)
	router := newSessionRouter(env)
	id := seedConversation(t, env, "ok")

	status, _ := doJSON(t, router, http.MethodDelete, "/api/sessions/"+id, nil, "Authorization", "Bearer "+testAdminToken)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, router, http.MethodGet, "/api/sessions/"+id, nil, "Authorization", "Bearer "+testAdminToken)
	assert.Equal(t, http.StatusNotFound, status)
	assert.EqualValues(t, 100002, body["code"])

	status, _ = doJSON(t, router, http.MethodDelete, "/api/sessions/"+id, nil, "Authorization", "Bearer "+testAdminToken)
	assert.Equal(t, http.StatusNotFound, status)
}
