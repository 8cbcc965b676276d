package static

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	Register(router)

	for _, name := range Files {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+name, nil))
		assert.Equal(t, http.StatusOK, w.Code, name)
		assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"), name)
	}
}

func TestEmbedScript_DropsStaleRenders(t *testing.T) {
	data, err := fs.ReadFile(FS(), "embed.js")
	require.NoError(t, err)

	script := string(data)
	assert.Contains(t, script, "var seq = ++renderSeq;")
	assert.Contains(t, script, "if (seq !== renderSeq || !res.data) return;")
}
