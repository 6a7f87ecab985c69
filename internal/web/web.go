// Package web holds the browser front end served at the site root.
package web

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML []byte

//go:embed script.js
var scriptJS []byte

// RegisterRoutes serves the page and its script
func RegisterRoutes(router gin.IRoutes) {
	router.GET("/", Index)
	router.GET("/script.js", Script)
}

// Index serves the single page
func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// Script serves the page's JavaScript
func Script(c *gin.Context) {
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", scriptJS)
}
