package api

import (
	"embed"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Embedded dashboard assets. The page under internal/api/web/ is a small
// static status view over the JSON API; there is no build step.
//
//go:embed web/*
var embeddedUI embed.FS

func dashboardFS() static.ServeFileSystem {
	return static.EmbedFolder(embeddedUI, "web")
}

// MountDashboard serves the embedded dashboard at /, leaving /api and
// /swagger untouched.
func MountDashboard(r *gin.Engine, logger *slog.Logger) {
	fs := dashboardFS()
	r.Use(static.Serve("/", fs))

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.RequestURI, "/api") || strings.HasPrefix(c.Request.RequestURI, "/swagger") {
			return
		}
		index, err := fs.Open("index.html")
		if err != nil {
			if logger != nil {
				logger.Error("failed to open index.html", "error", err)
			}
			return
		}
		defer index.Close()
		stat, _ := index.Stat()
		http.ServeContent(c.Writer, c.Request, "index.html", stat.ModTime(), index)
	})
}
