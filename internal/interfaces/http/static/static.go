package static

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed assets
var assets embed.FS

// Files 嵌入脚本与样式，按文件名注册到根路径
var Files = []string{"embed.js", "widget.css", "diagnostic.js", "diagnostic.css"}

// FS 返回静态资源文件系统
func FS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Register 注册 /embed.js 等静态资源路由
func Register(router gin.IRoutes) {
	files := http.FS(FS())
	for _, name := range Files {
		name := name
		router.GET("/"+name, func(c *gin.Context) {
			c.Header("Cache-Control", "public, max-age=300")
			c.FileFromFS(name, files)
		})
	}
}
