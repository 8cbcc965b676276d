package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/listerdale/chatbot/internal/interfaces/http/response"
)

// AdminAuth 管理接口 Bearer Token 校验，token 为空时接口不可用
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			response.Abort(c, http.StatusNotFound, response.CodeNotFound, "admin API disabled")
			return
		}

		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
			return
		}
		c.Next()
	}
}
