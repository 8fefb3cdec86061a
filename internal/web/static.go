package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var files embed.FS

// Register mounts the embedded browser client: the dashboard page at "/" and
// its assets under /static. Unknown routes stay with the API's 404 handler.
func Register(router *gin.Engine) {
	assets, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}

	router.GET("/", func(c *gin.Context) {
		page, err := fs.ReadFile(assets, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
	router.StaticFS("/static", http.FS(assets))
}
